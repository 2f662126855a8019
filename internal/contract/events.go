package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TipSentEvent holds the fields of a TipSent log.
type TipSentEvent struct {
	TipID     *big.Int
	Sender    common.Address
	Recipient common.Address
	Amount    *big.Int
	Fee       *big.Int
	Timestamp *big.Int
}

// TipMessageEvent holds the fields of a TipMessage log.
type TipMessageEvent struct {
	TipID   *big.Int
	Message string
}

// TipSentFromFields reads a TipSent event out of decoded log fields.
// A missing or mistyped field yields ErrMalformedEvent naming it.
func TipSentFromFields(fields map[string]interface{}) (*TipSentEvent, error) {
	var (
		event TipSentEvent
		err   error
	)

	if event.TipID, err = uintField(fields, "tipId"); err != nil {
		return nil, err
	}
	if event.Sender, err = addressField(fields, "sender"); err != nil {
		return nil, err
	}
	if event.Recipient, err = addressField(fields, "recipient"); err != nil {
		return nil, err
	}
	if event.Amount, err = uintField(fields, "amount"); err != nil {
		return nil, err
	}
	if event.Fee, err = uintField(fields, "fee"); err != nil {
		return nil, err
	}
	if event.Timestamp, err = uintField(fields, "timestamp"); err != nil {
		return nil, err
	}

	return &event, nil
}

// TipMessageFromFields reads a TipMessage event out of decoded log fields.
func TipMessageFromFields(fields map[string]interface{}) (*TipMessageEvent, error) {
	tipID, err := uintField(fields, "tipId")
	if err != nil {
		return nil, err
	}

	raw, ok := fields["message"]
	if !ok {
		return nil, fmt.Errorf("%w: missing field message", ErrMalformedEvent)
	}

	message, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: field message has type %T", ErrMalformedEvent, raw)
	}

	return &TipMessageEvent{TipID: tipID, Message: message}, nil
}

func uintField(fields map[string]interface{}, name string) (*big.Int, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: missing field %s", ErrMalformedEvent, name)
	}

	value, ok := raw.(*big.Int)
	if !ok || value == nil {
		return nil, fmt.Errorf("%w: field %s has type %T", ErrMalformedEvent, name, raw)
	}

	if value.Sign() < 0 {
		return nil, fmt.Errorf("%w: field %s is negative", ErrMalformedEvent, name)
	}

	return value, nil
}

func addressField(fields map[string]interface{}, name string) (common.Address, error) {
	raw, ok := fields[name]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: missing field %s", ErrMalformedEvent, name)
	}

	value, ok := raw.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: field %s has type %T", ErrMalformedEvent, name, raw)
	}

	return value, nil
}
