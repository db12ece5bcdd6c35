package dto

// ClientRequest body para POST/PUT /api/clients. También es la respuesta de la consulta de CNPJ
// (datos para precargar el formulario).
type ClientRequest struct {
	TradeName         string `json:"trade_name"`
	LegalName         string `json:"legal_name"`
	StateRegistration string `json:"state_registration,omitempty"`
	TaxID             string `json:"tax_id"`
	Street            string `json:"street,omitempty"`
	Complement        string `json:"complement,omitempty"`
	District          string `json:"district,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	ZipCode           string `json:"zip_code,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID                string `json:"id"`
	TradeName         string `json:"trade_name"`
	LegalName         string `json:"legal_name"`
	StateRegistration string `json:"state_registration,omitempty"`
	TaxID             string `json:"tax_id"`
	TaxIDFormatted    string `json:"tax_id_formatted"`
	Street            string `json:"street,omitempty"`
	Complement        string `json:"complement,omitempty"`
	District          string `json:"district,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	ZipCode           string `json:"zip_code,omitempty"`
}
