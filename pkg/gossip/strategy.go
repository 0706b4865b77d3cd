package gossip

import "fmt"

// Strategy is the gossip strategy run by each peer.
type Strategy string

const (
	StrategyOneWay Strategy = "one-way"
	StrategyTwoWay Strategy = "two-way"
)

// Strategies returns the supported strategies.
func Strategies() []Strategy {
	return []Strategy{StrategyOneWay, StrategyTwoWay}
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(s string) (Strategy, error) {
	for _, strategy := range Strategies() {
		if Strategy(s) == strategy {
			return strategy, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
}

// NewPeer creates a peer running the given strategy.
func NewPeer(strategy Strategy, id, devices int) (Peer, error) {
	var (
		peer Peer
		err  error
	)
	switch strategy {
	case StrategyOneWay:
		peer, err = NewOneWay(id, devices)
	case StrategyTwoWay:
		peer, err = NewTwoWay(id, devices)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
	if err != nil {
		return nil, err
	}
	return peer, nil
}
