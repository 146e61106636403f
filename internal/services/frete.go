package services

import (
	"errors"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"
)

// CEP da loja (Bacacheri, Curitiba/PR)
const OriginCEP = 82515000

// Faixa de CEP atendida pela frota própria (Curitiba e região metropolitana)
const (
	localBandStart = 80000000
	localBandEnd   = 83800000
)

// Regra de negócio carro vs. moto: acima desses volumes a carga não vai de moto
const (
	heavyMetersLimit = 10.0
	heavyUnitsLimit  = 5.0
)

const (
	basePriceMoto = 12.00
	basePriceCar  = 25.00
)

var ErrInvalidCEP = errors.New("CEP inválido")

// RateClient é a cotação externa de fretes nacionais (Melhor Envio)
type RateClient interface {
	Calculate(cep string, items []models.CartItem) ([]models.ShippingOption, error)
}

// Estimator calcula as opções de frete para um CEP de destino
type Estimator struct {
	Origin int
	Rates  RateClient // nil quando a API externa está desligada
}

// NewEstimator monta o estimador padrão; a API externa só entra quando o
// token está configurado
func NewEstimator() *Estimator {
	e := &Estimator{Origin: OriginCEP}
	if token := os.Getenv("MELHORENVIO_TOKEN"); token != "" {
		e.Rates = NewMelhorEnvioClient(token)
	}
	return e
}

// CleanCEP remove tudo que não for dígito e valida o tamanho
func CleanCEP(cep string) (int, error) {
	var digits strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 8 {
		return 0, ErrInvalidCEP
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, ErrInvalidCEP
	}
	return n, nil
}

// Estimate devolve as opções de entrega ordenadas da mais barata para a
// mais cara
func (e *Estimator) Estimate(cep string, items []models.CartItem) ([]models.ShippingOption, error) {
	destination, err := CleanCEP(cep)
	if err != nil {
		return nil, err
	}

	// --- 1. Análise do carrinho (peso/volume) ---
	var totalMeters, totalUnits float64
	for _, item := range items {
		if item.Type == models.TypeMeter {
			totalMeters += item.Quantity
		} else {
			totalUnits += item.Quantity
		}
	}
	isHeavyLoad := totalMeters > heavyMetersLimit || totalUnits > heavyUnitsLimit

	var options []models.ShippingOption

	if destination >= localBandStart && destination <= localBandEnd {
		options = e.localOptions(destination, isHeavyLoad)
	} else {
		options = e.nationalOptions(cep, destination, isHeavyLoad, items)
	}

	sort.Slice(options, func(i, j int) bool { return options[i].Price < options[j].Price })
	return options, nil
}

// localOptions cobre Curitiba e RMC com a frota própria
func (e *Estimator) localOptions(destination int, isHeavyLoad bool) []models.ShippingOption {
	// Diferença entre CEPs como aproximação de distância: R$ 0,10 a cada
	// "zona" de 5000 números
	diff := math.Abs(float64(destination - e.Origin))
	variation := math.Ceil(diff/5000) * 0.10

	var options []models.ShippingOption
	if isHeavyLoad {
		options = append(options, models.ShippingOption{
			ID:           "local-car",
			Name:         "Entrega Expressa (Carro)",
			Price:        basePriceCar + variation,
			DeliveryTime: 1,
			Company:      models.ShippingCompany{Name: "Logística Própria"},
		})
	} else {
		options = append(options, models.ShippingOption{
			ID:           "local-moto",
			Name:         "Entrega Expressa (Moto)",
			Price:        basePriceMoto + variation,
			DeliveryTime: 1,
			Company:      models.ShippingCompany{Name: "Logística Própria"},
		})
	}

	// Retirada sempre disponível para a região
	options = append(options, models.ShippingOption{
		ID:           "pickup",
		Name:         "Retirada na Loja (Bacacheri)",
		Price:        0,
		DeliveryTime: 0,
		Company:      models.ShippingCompany{Name: "Loja Física"},
	})

	return options
}

// nationalOptions cobre o resto do país. Com a API externa ligada, cota uma
// única vez e cai nas fórmulas fixas se ela falhar; desligada, devolve o
// aviso de orçamento pelo WhatsApp.
func (e *Estimator) nationalOptions(cep string, destination int, isHeavyLoad bool, items []models.CartItem) []models.ShippingOption {
	if e.Rates == nil {
		return []models.ShippingOption{{
			ID:            "quote-whatsapp",
			Name:          "Frete Sob Consulta (WhatsApp)",
			Price:         0,
			DeliveryTime:  0,
			Company:       models.ShippingCompany{Name: "Rio Verde"},
			QuoteRequired: true,
		}}
	}

	options, err := e.Rates.Calculate(cep, items)
	if err != nil || len(options) == 0 {
		// Disponibilidade acima de precisão: a estimativa fixa segura a
		// venda enquanto a cotação externa não responde
		log.Println("⚠️ Cotação externa falhou, usando estimativa fixa:", err)
		return fixedNationalOptions(destination, e.Origin, isHeavyLoad)
	}
	return options
}

// fixedNationalOptions simula PAC/SEDEX por distância de CEP
func fixedNationalOptions(destination, origin int, isHeavyLoad bool) []models.ShippingOption {
	distanceFactor := math.Abs(float64(destination-origin)) / 10000000

	weightMultiplier := 1.0
	if isHeavyLoad {
		weightMultiplier = 2.5
	}

	pacPrice := (25.00 + distanceFactor*10) * weightMultiplier
	sedexPrice := (45.00 + distanceFactor*15) * weightMultiplier

	return []models.ShippingOption{
		{
			ID:           "correios-pac",
			Name:         "PAC (Estimado)",
			Price:        round2(pacPrice),
			DeliveryTime: 7 + int(distanceFactor),
			Company:      models.ShippingCompany{Name: "Correios"},
		},
		{
			ID:           "correios-sedex",
			Name:         "SEDEX (Estimado)",
			Price:        round2(sedexPrice),
			DeliveryTime: 3 + int(distanceFactor),
			Company:      models.ShippingCompany{Name: "Correios"},
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
