package catalog

import "github.com/Evolvetech-Johnn/holystreetstore/internal/money"

// seedProducts is the static storefront inventory.
var seedProducts = []Product{
	{
		ID:               1,
		Name:             "Camiseta Oversized 'Propósito' - Black",
		Description:      "Camiseta premium com corte oversized, estampada com a palavra 'Propósito' em caligrafia urbana.",
		Price:            money.MustDecimal("129.90"),
		OriginalPrice:    money.MustDecimal("159.90"),
		Category:         "Camisetas",
		Image:            "/img/products/oversized-black.jpg",
		Featured:         true,
		Rating:           4.9,
		Reviews:          24,
		Sizes:            []string{"P", "M", "G", "GG"},
		Colors:           []string{"Black"},
		Stock:            Stock{Status: StockAvailable, Quantity: 15},
		HolyDropIncluded: true,
	},
	{
		ID:               2,
		Name:             "Moletom Hoodie 'Santo' - Off White",
		Description:      "Moletom pesado com capuz, bordado minimalista 'Holy' no peito. Conforto e fé.",
		Price:            money.MustDecimal("249.90"),
		OriginalPrice:    money.MustDecimal("289.90"),
		Category:         "Moletons",
		Image:            "/img/products/hoodie-white.jpg",
		Featured:         true,
		Rating:           5.0,
		Reviews:          12,
		Sizes:            []string{"M", "G", "GG"},
		Colors:           []string{"Off White"},
		Stock:            Stock{Status: StockAvailable, Quantity: 8},
		HolyDropIncluded: true,
	},
	{
		ID:               3,
		Name:             "Camiseta Boxy 'Identidade' - Acid Wash",
		Description:      "Corte boxy moderno com lavagem estonada. Estampa frontal inspirada em Salmos.",
		Price:            money.MustDecimal("139.90"),
		Category:         "Camisetas",
		Image:            "/img/products/boxy-acid.jpg",
		Rating:           4.8,
		Reviews:          18,
		Sizes:            []string{"P", "M", "G"},
		Colors:           []string{"Cinza Estonado"},
		Stock:            Stock{Status: StockLow, Quantity: 3},
		HolyDropIncluded: true,
	},
	{
		ID:               4,
		Name:             "Calça Jogger 'Caminho' - Cargo",
		Description:      "Calça cargo em sarja premium. Detalhes utilitários e ajuste perfeito para o urbano.",
		Price:            money.MustDecimal("199.90"),
		Category:         "Calças",
		Image:            "/img/products/jogger-cargo.jpg",
		Rating:           4.7,
		Reviews:          9,
		Sizes:            []string{"38", "40", "42", "44"},
		Colors:           []string{"Preto", "Bege"},
		Stock:            Stock{Status: StockAvailable, Quantity: 12},
		HolyDropIncluded: true,
	},
	{
		ID:          5,
		Name:        "Boné Dad Hat 'Cruz' - Minimalist",
		Description: "Acessório essencial com bordado sutil da cruz. 100% algodão.",
		Price:       money.MustDecimal("89.90"),
		Category:    "Acessórios",
		Image:       "/img/products/cap-cross.jpg",
		Rating:      4.9,
		Reviews:     42,
		Sizes:       []string{"Ajustável"},
		Colors:      []string{"Preto", "Azul Marinho"},
		Stock:       Stock{Status: StockAvailable, Quantity: 25},
	},
}

var seedCategories = []Category{
	{Name: "Camisetas", Icon: "👕", Count: 2},
	{Name: "Moletons", Icon: "🧥", Count: 1},
	{Name: "Calças", Icon: "👖", Count: 1},
	{Name: "Acessórios", Icon: "🧢", Count: 1},
}
