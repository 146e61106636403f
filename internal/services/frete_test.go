package services

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCEP(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"com hifen", "80000-000", 80000000, false},
		{"so digitos", "99999999", 99999999, false},
		{"com espacos e pontos", " 82.515-000 ", 82515000, false},
		{"curto demais", "8000-000", 0, true},
		{"longo demais", "800000001", 0, true},
		{"vazio", "", 0, true},
		{"so letras", "abcdefgh", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CleanCEP(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCEP)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

// Carga leve em CEP local: moto + retirada gratuita, mais barata primeiro
func TestEstimateLocalLightLoad(t *testing.T) {
	e := &Estimator{Origin: OriginCEP}
	items := []models.CartItem{
		{Name: "Espuma D33", Price: 50, Quantity: 2, Type: models.TypeUnit},
	}

	options, err := e.Estimate("80000-000", items)
	require.NoError(t, err)
	require.Len(t, options, 2)

	assert.Equal(t, "pickup", options[0].ID)
	assert.Equal(t, 0.0, options[0].Price)
	assert.Equal(t, "local-moto", options[1].ID)

	// 12,00 de base + R$0,10 por zona de 5000 CEPs de distância
	diff := math.Abs(float64(80000000 - OriginCEP))
	expected := basePriceMoto + math.Ceil(diff/5000)*0.10
	assert.InDelta(t, expected, options[1].Price, 0.001)
	assert.True(t, sort.SliceIsSorted(options, func(i, j int) bool {
		return options[i].Price < options[j].Price
	}))
}

// Acima de 10 metros ou 5 unidades a entrega local sobe para o carro, que
// custa estritamente mais que a moto custaria no mesmo destino
func TestEstimateLocalHeavyLoad(t *testing.T) {
	e := &Estimator{Origin: OriginCEP}

	light := []models.CartItem{{Quantity: 10, Type: models.TypeMeter}}
	heavy := []models.CartItem{{Quantity: 10.5, Type: models.TypeMeter}}

	lightOpts, err := e.Estimate("81000000", light)
	require.NoError(t, err)
	heavyOpts, err := e.Estimate("81000000", heavy)
	require.NoError(t, err)

	motoPrice := findOption(t, lightOpts, "local-moto").Price
	carPrice := findOption(t, heavyOpts, "local-car").Price
	assert.Greater(t, carPrice, motoPrice)
}

func TestEstimateHeavyByUnits(t *testing.T) {
	e := &Estimator{Origin: OriginCEP}
	items := []models.CartItem{{Quantity: 6, Type: models.TypeUnit}}

	options, err := e.Estimate("80000000", items)
	require.NoError(t, err)
	findOption(t, options, "local-car")
}

// Fora da faixa local e sem API externa configurada: um único aviso de
// orçamento pelo WhatsApp, com preço zero
func TestEstimateNationalQuotePlaceholder(t *testing.T) {
	e := &Estimator{Origin: OriginCEP}
	items := []models.CartItem{{Quantity: 1, Type: models.TypeUnit}}

	options, err := e.Estimate("99999999", items)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "quote-whatsapp", options[0].ID)
	assert.Equal(t, 0.0, options[0].Price)
	assert.True(t, options[0].QuoteRequired)
}

type failingRates struct{}

func (failingRates) Calculate(string, []models.CartItem) ([]models.ShippingOption, error) {
	return nil, errors.New("api fora do ar")
}

// Com a cotação externa falhando, caem as estimativas fixas de PAC/SEDEX
func TestEstimateNationalFixedFallback(t *testing.T) {
	e := &Estimator{Origin: OriginCEP, Rates: failingRates{}}
	items := []models.CartItem{{Quantity: 12, Type: models.TypeMeter}}

	options, err := e.Estimate("99999-999", items)
	require.NoError(t, err)
	require.Len(t, options, 2)

	pac := findOption(t, options, "correios-pac")
	sedex := findOption(t, options, "correios-sedex")

	distanceFactor := math.Abs(float64(99999999-OriginCEP)) / 10000000
	assert.InDelta(t, round2((25.00+distanceFactor*10)*2.5), pac.Price, 0.001)
	assert.InDelta(t, round2((45.00+distanceFactor*15)*2.5), sedex.Price, 0.001)
	assert.Equal(t, 7+int(distanceFactor), pac.DeliveryTime)
	assert.Equal(t, 3+int(distanceFactor), sedex.DeliveryTime)
	assert.LessOrEqual(t, options[0].Price, options[1].Price)
}

type fakeRates struct {
	options []models.ShippingOption
}

func (f fakeRates) Calculate(string, []models.CartItem) ([]models.ShippingOption, error) {
	return f.options, nil
}

func TestEstimateNationalExternalRates(t *testing.T) {
	e := &Estimator{Origin: OriginCEP, Rates: fakeRates{options: []models.ShippingOption{
		{ID: "me-2", Name: "SEDEX", Price: 52.10, DeliveryTime: 3},
		{ID: "me-1", Name: "PAC", Price: 31.90, DeliveryTime: 8},
	}}}

	options, err := e.Estimate("01310-100", []models.CartItem{{Quantity: 1, Type: models.TypeUnit}})
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "me-1", options[0].ID) // reordenado pelo preço
}

func TestEstimateInvalidCEP(t *testing.T) {
	e := &Estimator{Origin: OriginCEP}
	_, err := e.Estimate("1234", nil)
	assert.ErrorIs(t, err, ErrInvalidCEP)
}

func findOption(t *testing.T, options []models.ShippingOption, id string) models.ShippingOption {
	t.Helper()
	for _, o := range options {
		if o.ID == id {
			return o
		}
	}
	t.Fatalf("opção %q não encontrada em %+v", id, options)
	return models.ShippingOption{}
}
