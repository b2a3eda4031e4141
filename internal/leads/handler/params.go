package handler

import (
	"fmt"
	"strconv"
)

func parsePositiveInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, fmt.Errorf("value must be positive")
	}
	return v, nil
}
