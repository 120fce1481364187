package session

import "errors"

var ErrIncorrectAnswer = errors.New("incorrect answer")
