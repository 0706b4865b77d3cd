// Package medium implements an in-process round-synchronous message medium
// for gossip peers.
//
// Each peer gets an Endpoint implementing gossip.Medium. The emulator
// advances to the next round once every active peer is waiting for it.
// Messages sent in round r become deliverable in round r+1, and each peer
// receives at most one message per round, with any other messages queued for
// later rounds.
//
// Messages are encoded with the wire codec when sent and decoded when queued,
// so the receiving peer never shares memory with the sender.
package medium
