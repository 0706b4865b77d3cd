package medium

import (
	"bytes"
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/andydunstall/ringcast/pkg/gossip"
)

// wireMessage is the encoded representation of gossip.Message.
type wireMessage struct {
	Source      int   `codec:"source"`
	Destination int   `codec:"destination"`
	Secrets     []int `codec:"secrets"`
}

var msgpackHandle codec.MsgpackHandle

func encodeMessage(msg gossip.Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, &msgpackHandle)
	if err := enc.Encode(&wireMessage{
		Source:      msg.Source,
		Destination: msg.Destination,
		Secrets:     msg.Secrets.Sorted(),
	}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeMessage(b []byte) (gossip.Message, error) {
	var wire wireMessage
	dec := codec.NewDecoderBytes(b, &msgpackHandle)
	if err := dec.Decode(&wire); err != nil {
		return gossip.Message{}, fmt.Errorf("decode: %w", err)
	}
	return gossip.Message{
		Source:      wire.Source,
		Destination: wire.Destination,
		Secrets:     gossip.NewSecrets(wire.Secrets...),
	}, nil
}

// roundTrip encodes then decodes msg, returning the decoded copy and the
// encoded size.
func roundTrip(msg gossip.Message) (gossip.Message, int, error) {
	b, err := encodeMessage(msg)
	if err != nil {
		return gossip.Message{}, 0, err
	}
	decoded, err := decodeMessage(b)
	if err != nil {
		return gossip.Message{}, 0, err
	}
	return decoded, len(b), nil
}
