package service

import (
	"math/rand"

	"github.com/avc-dev/shortlink/internal/model"
)

// AllowedChars задаёт 62-символьный алфавит кодов.
// При длине кода 10 пространство кодов ~8.4e17, вероятность коллизии пренебрежимо мала.
const AllowedChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator определяет генератор коротких кодов
type Generator interface {
	GenerateCode() model.Code
}

// CodeGenerator генерирует случайные коды фиксированной длины
type CodeGenerator struct {
	length int
}

// NewCodeGenerator создает генератор кодов заданной длины
func NewCodeGenerator(length int) *CodeGenerator {
	return &CodeGenerator{length: length}
}

// GenerateCode генерирует случайный код
func (g *CodeGenerator) GenerateCode() model.Code {
	result := make([]byte, g.length)

	// глобальный источник math/rand безопасен для конкурентного использования
	for i := range result {
		result[i] = AllowedChars[rand.Intn(len(AllowedChars))]
	}

	return model.Code(result)
}
