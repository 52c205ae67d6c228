package repository

import "errors"

var ErrCustomerNotFound = errors.New("customer not found")
var ErrNoteNotFound = errors.New("note not found")
