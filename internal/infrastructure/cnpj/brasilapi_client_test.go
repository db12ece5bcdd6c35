package cnpj_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/cnpj"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &path
}

func TestLookup_MapeaRespuesta(t *testing.T) {
	srv, path := newServer(t, http.StatusOK, `{
		"cnpj": "11222333000181",
		"razao_social": "PADARIA CENTRAL LTDA",
		"nome_fantasia": "PADARIA CENTRAL",
		"logradouro": "RUA DAS FLORES",
		"numero": "100",
		"complemento": "LOJA 2",
		"bairro": "CENTRO",
		"municipio": "CAMPINAS",
		"uf": "sp",
		"cep": "13010-000"
	}`)
	client := cnpj.NewBrasilAPIClient(srv.URL+"/api/cnpj/v1/", time.Second)

	out, err := client.Lookup(context.Background(), "11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, "/api/cnpj/v1/11222333000181", *path)
	assert.Equal(t, "PADARIA CENTRAL", out.TradeName)
	assert.Equal(t, "PADARIA CENTRAL LTDA", out.LegalName)
	assert.Equal(t, "11222333000181", out.TaxID)
	assert.Equal(t, "RUA DAS FLORES, 100", out.Street)
	assert.Equal(t, "LOJA 2", out.Complement)
	assert.Equal(t, "SP", out.State)
	assert.Equal(t, "13010000", out.ZipCode)
}

func TestLookup_SinNomeFantasiaUsaRazaoSocial(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"razao_social": "ACME EMBALAGENS LTDA", "nome_fantasia": ""}`)
	out, err := cnpj.NewBrasilAPIClient(srv.URL, time.Second).Lookup(context.Background(), "11222333000181")
	require.NoError(t, err)
	assert.Equal(t, "ACME EMBALAGENS LTDA", out.TradeName)
}

func TestLookup_NoEncontrado(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `{"message": "CNPJ não encontrado"}`)
	_, err := cnpj.NewBrasilAPIClient(srv.URL, time.Second).Lookup(context.Background(), "11222333000181")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookup_ErrorDelServicio(t *testing.T) {
	srv, _ := newServer(t, http.StatusTooManyRequests, `{"message": "limite"}`)
	_, err := cnpj.NewBrasilAPIClient(srv.URL, time.Second).Lookup(context.Background(), "11222333000181")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "429")
}
