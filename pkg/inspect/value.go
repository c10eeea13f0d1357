package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// ErrInvalidInput is returned when text cannot be parsed for a format.
var ErrInvalidInput = errors.New("invalid input")

// ParseValue converts user input into a value suitable for writing to the
// characteristic described by info. Enum values accept a state name
// (case-insensitive) or a numeric code.
func ParseValue(info *model.CharacteristicInfo, input string) (any, error) {
	input = strings.TrimSpace(input)
	kind, ok := model.ParseFormatKind(info.Format)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidInput, info.Format)
	}

	switch kind {
	case model.FormatBool:
		switch strings.ToLower(input) {
		case "on", "yes":
			return true, nil
		case "off", "no":
			return false, nil
		}
		v, err := strconv.ParseBool(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a bool", ErrInvalidInput, input)
		}
		return v, nil

	case model.FormatInt:
		v, err := strconv.ParseInt(input, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, input)
		}
		return v, nil

	case model.FormatFloat:
		v, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, input)
		}
		return v, nil

	case model.FormatEnum:
		for i, name := range info.ValidNames {
			if strings.EqualFold(name, input) && i < len(info.ValidValues) {
				return info.ValidValues[i], nil
			}
		}
		v, err := strconv.Atoi(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a state of %s", ErrInvalidInput, input, info.Name)
		}
		return v, nil

	default:
		return input, nil
	}
}
