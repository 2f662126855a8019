package contract

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrMalformedEvent marks a log that does not decode into the expected event fields.
var ErrMalformedEvent = errors.New("malformed event")

func Indexed(args abi.Arguments) abi.Arguments {
	var indexed abi.Arguments
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

// FindMatchingEventABI returns the event whose id is topics[0] and whose indexed
// argument count matches the remaining topics.
func FindMatchingEventABI(contractABI abi.ABI, topics []common.Hash) *abi.Event {
	for _, e := range contractABI.Events {
		if e.ID == topics[0] {
			indexed := Indexed(e.Inputs)
			if len(indexed) == len(topics)-1 {
				return &e
			}
		}
	}
	return nil
}

func DecodeEventLog(event *abi.Event, topics []common.Hash, data []byte) (map[string]interface{}, error) {
	indexed := Indexed(event.Inputs)
	values := make(map[string]interface{})
	if len(indexed) < len(event.Inputs) {
		if err := event.Inputs.UnpackIntoMap(values, data); err != nil {
			return nil, fmt.Errorf("can't unpack data: %w", err)
		}
	}
	if err := abi.ParseTopicsIntoMap(values, indexed, topics[1:]); err != nil {
		return nil, fmt.Errorf("can't unpack topics: %w", err)
	}
	return values, nil
}

// ParseLog decodes a raw log against the contract ABI and returns the event name with its fields.
// Any failure is reported as ErrMalformedEvent.
func ParseLog(contractABI abi.ABI, log types.Log) (string, map[string]interface{}, error) {
	if len(log.Topics) == 0 {
		return "", nil, fmt.Errorf("%w: log without topics", ErrMalformedEvent)
	}

	event := FindMatchingEventABI(contractABI, log.Topics)
	if event == nil {
		return "", nil, fmt.Errorf("%w: no event matches topic %s with %d indexed values",
			ErrMalformedEvent, log.Topics[0], len(log.Topics)-1)
	}

	values, err := DecodeEventLog(event, log.Topics, log.Data)
	if err != nil {
		return event.Name, nil, fmt.Errorf("%w: %s: %w", ErrMalformedEvent, event.Name, err)
	}

	return event.Name, values, nil
}
