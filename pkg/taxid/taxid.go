// Package taxid normaliza y formatea documentos fiscales brasileños (CNPJ y CPF). El cálculo de los
// dígitos verificadores lo hace brdoc.
package taxid

import (
	"fmt"
	"unicode"

	"github.com/paemuri/brdoc"
)

const (
	CNPJLength = 14
	CPFLength  = 11
)

// Digits devuelve solo los dígitos de s. "11.222.333/0001-81" -> "11222333000181".
func Digits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, r)
		}
	}
	return string(out)
}

// Format aplica la máscara de CNPJ (00.000.000/0000-00) o CPF (000.000.000-00).
// Con otra cantidad de dígitos devuelve la entrada sin cambios.
func Format(doc string) string {
	d := Digits(doc)
	switch len(d) {
	case CNPJLength:
		return fmt.Sprintf("%s.%s.%s/%s-%s", d[:2], d[2:5], d[5:8], d[8:12], d[12:])
	case CPFLength:
		return fmt.Sprintf("%s.%s.%s-%s", d[:3], d[3:6], d[6:9], d[9:])
	default:
		return doc
	}
}

// Validate acepta CNPJ o CPF según la cantidad de dígitos.
func Validate(doc string) error {
	d := Digits(doc)
	switch len(d) {
	case CNPJLength:
		return ValidateCNPJ(d)
	case CPFLength:
		return ValidateCPF(d)
	default:
		return fmt.Errorf("taxid: documento debe tener 11 (CPF) o 14 (CNPJ) dígitos, se encontraron %d", len(d))
	}
}

// ValidateCNPJ verifica los dígitos verificadores del CNPJ. Acepta la entrada con o sin máscara.
func ValidateCNPJ(cnpj string) error {
	d := Digits(cnpj)
	if len(d) != CNPJLength {
		return fmt.Errorf("taxid: CNPJ debe tener 14 dígitos, se encontraron %d", len(d))
	}
	if !brdoc.IsCNPJ(d) {
		return fmt.Errorf("taxid: CNPJ inválido: %s", Format(d))
	}
	return nil
}

// ValidateCPF verifica los dígitos verificadores del CPF.
func ValidateCPF(cpf string) error {
	d := Digits(cpf)
	if len(d) != CPFLength {
		return fmt.Errorf("taxid: CPF debe tener 11 dígitos, se encontraron %d", len(d))
	}
	if !brdoc.IsCPF(d) {
		return fmt.Errorf("taxid: CPF inválido: %s", Format(d))
	}
	return nil
}
