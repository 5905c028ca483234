// Package validation содержит правила проверки входных данных.
package validation

const (
	cpfLength          = 11
	cpfFormattedLength = 14
)

// IsValidCPF проверяет номер CPF по контрольным цифрам.
// Допускаются только 11 цифр подряд или формат ###.###.###-##; строки из одинаковых цифр отклоняются.
func IsValidCPF(cpf string) bool {
	digits, ok := cpfDigits(cpf)
	if !ok {
		return false
	}

	allEqual := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	return checkDigit(digits[:9]) == digits[9] && checkDigit(digits[:10]) == digits[10]
}

// NormalizeCPF возвращает CPF из одних цифр. Строки не в допустимом формате возвращаются без изменений.
func NormalizeCPF(cpf string) string {
	digits, ok := cpfDigits(cpf)
	if !ok {
		return cpf
	}

	out := make([]byte, cpfLength)
	for i, d := range digits {
		out[i] = byte('0' + d)
	}
	return string(out)
}

func cpfDigits(cpf string) ([]int, bool) {
	switch len(cpf) {
	case cpfLength:
	case cpfFormattedLength:
		if cpf[3] != '.' || cpf[7] != '.' || cpf[11] != '-' {
			return nil, false
		}
	default:
		return nil, false
	}

	digits := make([]int, 0, cpfLength)
	for i := 0; i < len(cpf); i++ {
		ch := cpf[i]
		if len(cpf) == cpfFormattedLength && (i == 3 || i == 7 || i == 11) {
			continue
		}
		if ch < '0' || ch > '9' {
			return nil, false
		}
		digits = append(digits, int(ch-'0'))
	}

	return digits, true
}

func checkDigit(digits []int) int {
	sum := 0
	weight := len(digits) + 1
	for _, d := range digits {
		sum += d * weight
		weight--
	}

	rest := sum * 10 % 11
	if rest == 10 {
		return 0
	}
	return rest
}
