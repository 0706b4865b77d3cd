// Package gossip implements secret dissemination between a fixed set of
// peers arranged in a logical ring.
//
// Each peer starts knowing a single secret, its own identity, and the peers
// gossip their accumulated secrets to their ring neighbours until every peer
// knows the secret of every other peer. Two strategies are supported:
//
//   - One-way, where each peer only forwards to its successor and secrets
//     travel around the ring in a single direction, starting at peer 0.
//   - Two-way, where secrets travel from peer 0 to the last peer and are
//     reflected back, so interior peers relay to whichever neighbour didn't
//     send the message.
//
// Peers don't communicate directly. Instead they exchange messages via a
// round-synchronous Medium, where messages sent in one round are delivered
// in a later round and each peer receives at most one message per round.
package gossip
