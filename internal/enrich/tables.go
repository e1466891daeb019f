package enrich

const DefaultCategory = "default"

type Category struct {
	Name     string
	Keywords []string
}

// Tables holds the lookup data the enrichment components are built from.
// DefaultTables returns fresh copies, so callers may edit them freely.
type Tables struct {
	StopWords         []string
	FallbackKeyword   string
	Categories        []Category
	BlockedHosts      []string
	BlockedImageNames []string
	DocumentExts      []string
}

func DefaultTables() Tables {
	return Tables{
		StopWords: []string{
			"laboratorio", "lab", "de", "e", "da", "do", "dos", "das", "a", "o",
			"em", "para", "com", "sistemas", "pesquisa", "grupo", "nucleo",
			"centro", "automacao", "aplicada", "aplicados", "estudos", "avancados",
			"unb", "fga",
		},
		FallbackKeyword: "pesquisa",
		Categories: []Category{
			{Name: "software", Keywords: []string{
				"software", "computacao", "computacional", "informática", "digital",
				"ia", "inteligencia artificial", "algoritmos", "dados", "bioinformatica",
			}},
			{Name: "eletronica", Keywords: []string{
				"eletronica", "microeletronica", "hardware", "embarcados", "circuitos",
				"semicondutores", "telecomunicacoes",
			}},
			{Name: "mecanica_materiais", Keywords: []string{
				"automotiva", "automotivo", "veicular", "aeroespacial", "aeronautica",
				"energia", "eletrica", "renovaveis", "potencia", "materiais", "nanotecnologia",
				"polimeros", "fisica", "mecanica", "controle", "robotica", "automacao",
			}},
		},
		BlockedHosts: []string{
			"bing.com", "google.com", "escavador.com", "researchgate.net", "academia.edu",
			"github.com", "linkedin.com", "facebook.com", "instagram.com", "twitter.com",
			"sigaa.unb.br",
		},
		BlockedImageNames: []string{
			"logo-unb.png", "unbdpi-logo.png", "unbpi-logo.png", "logo_unb1.png",
			"pctec-unb_logo.png", "repositoriocovid19_header.png", "opine.png",
			"opine-sobre-o-portal.png", "clipart/en.svg", "antonio-150x150.jpg",
			"cropped-face-12.png", "foto_pessoal_moodles.png",
			"googleusercontent.com/profile/picture", "grade_curricular_atualizada.png",
			"benvindo_rodrigues_pereira_junior.jpg",
		},
		DocumentExts: []string{".pdf", ".doc", ".docx", ".odt"},
	}
}
