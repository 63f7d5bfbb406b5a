package service

import "errors"

var (
	// ErrAllocationExhausted возвращается, когда не удалось подобрать уникальный код
	// за отведённое число попыток. Временный сигнал: клиент может повторить запрос.
	ErrAllocationExhausted = errors.New("code allocation exhausted retry budget")
)
