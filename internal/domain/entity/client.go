package entity

import "time"

// Client representa un cliente (persona jurídica o física) al que se emiten pedidos y presupuestos.
type Client struct {
	ID                string
	TradeName         string // nome fantasia, único
	LegalName         string // razão social
	StateRegistration string // inscrição estadual
	TaxID             string // CNPJ o CPF, solo dígitos, único
	Street            string // logradouro y número
	Complement        string
	District          string
	City              string
	State             string // UF
	ZipCode           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
