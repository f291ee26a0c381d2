// Package cart decodes the client-side cart token. The storefront keeps the
// cart in the browser as a "-"-separated list of product ids, one token per
// unit, so the server stays session-less.
package cart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const delimiter = "-"

var ErrInvalidCartEncoding = errors.New("invalid cart encoding")

// Decode turns an encoding like "3-7-3" into {3: 2, 7: 1}. An empty string is
// an empty cart, not an error. Any token that is not a non-negative integer
// fails the whole decode.
func Decode(encoding string) (map[int]uint, error) {
	quantities := make(map[int]uint)
	if encoding == "" {
		return quantities, nil
	}

	for _, token := range strings.Split(encoding, delimiter) {
		id, err := strconv.Atoi(token)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("%w: bad token %q", ErrInvalidCartEncoding, token)
		}
		quantities[id]++
	}

	return quantities, nil
}
