package envparse

import (
	"fmt"
	"net/mail"
	"strconv"
	"time"
)

func PositiveDuration(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err != nil {
		return 0, err
	} else if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %v", d)
	} else {
		return d, nil
	}
}

func NonNegativeNumber(value string) (int, error) {
	if n, err := strconv.Atoi(value); err != nil {
		return 0, err
	} else if n < 0 {
		return 0, fmt.Errorf("number must not be negative: %v", n)
	} else {
		return n, nil
	}
}

func MailAddress(value string) (*mail.Address, error) {
	return mail.ParseAddress(value)
}
