package nlp

func spanishLexicon() *Lexicon {
	return &Lexicon{
		StopWords: []string{
			"también", "muy", "más", "menos", "ya", "así", "aquí", "allí", "todo", "todos",
			"otra", "otro", "otros", "mismo", "cada", "sólo", "solo", "bien", "hay", "sino",
		},
		ClosedClass: closed(map[string][]string{
			"DET":   {"el", "la", "los", "las", "un", "una", "unos", "unas", "este", "esta", "estos", "estas", "ese", "esa", "esos", "esas", "aquel", "aquella", "su", "sus", "mi", "mis", "tu", "tus", "nuestro", "nuestra", "cada", "todo", "toda", "todos", "todas", "algún", "alguna", "ningún", "ninguna"},
			"PRON":  {"yo", "tú", "él", "ella", "nosotros", "nosotras", "vosotros", "ellos", "ellas", "usted", "ustedes", "me", "te", "se", "nos", "os", "le", "les", "lo", "que", "quien", "quienes", "algo", "nada", "alguien", "nadie", "esto", "eso"},
			"ADP":   {"a", "al", "ante", "bajo", "con", "contra", "de", "del", "desde", "durante", "en", "entre", "hacia", "hasta", "mediante", "para", "por", "según", "sin", "sobre", "tras"},
			"CCONJ": {"y", "e", "o", "u", "pero", "ni", "sino"},
			"SCONJ": {"porque", "aunque", "si", "cuando", "mientras", "como", "donde", "pues"},
			"AUX":   {"es", "son", "era", "eran", "fue", "fueron", "ser", "sido", "siendo", "soy", "eres", "somos", "está", "están", "estaba", "estar", "estoy", "ha", "han", "he", "has", "había", "haber", "hemos", "sea", "será", "puede", "pueden", "debe", "deben"},
			"PART":  {"no"},
			"ADV":   {"muy", "más", "menos", "ya", "también", "tampoco", "aquí", "allí", "ahora", "siempre", "nunca", "hoy", "ayer", "bien", "mal", "así", "todavía", "aún", "sólo"},
		}),
		Lemmas: map[string]string{
			"es": "ser", "son": "ser", "era": "ser", "eran": "ser", "fue": "ser", "fueron": "ser", "sido": "ser", "soy": "ser", "eres": "ser", "somos": "ser", "sea": "ser", "será": "ser",
			"está": "estar", "están": "estar", "estaba": "estar", "estoy": "estar",
			"ha": "haber", "han": "haber", "he": "haber", "has": "haber", "había": "haber", "hemos": "haber",
			"puede": "poder", "pueden": "poder", "debe": "deber", "deben": "deber",
			"la": "el", "los": "el", "las": "el", "una": "uno", "unos": "uno", "unas": "uno", "un": "uno",
			"al": "a", "del": "de",
		},
		Suffixes: []SuffixTag{
			{Suffix: "mente", Tag: "ADV", MinStem: 3},
			{Suffix: "ción", Tag: "NOUN", MinStem: 2},
			{Suffix: "ciones", Tag: "NOUN", MinStem: 2},
			{Suffix: "dad", Tag: "NOUN", MinStem: 3},
			{Suffix: "ismo", Tag: "NOUN", MinStem: 3},
			{Suffix: "oso", Tag: "ADJ", MinStem: 3},
			{Suffix: "osa", Tag: "ADJ", MinStem: 3},
			{Suffix: "ble", Tag: "ADJ", MinStem: 3},
			{Suffix: "ico", Tag: "ADJ", MinStem: 3},
			{Suffix: "ica", Tag: "ADJ", MinStem: 3},
			{Suffix: "ar", Tag: "VERB", MinStem: 3},
			{Suffix: "er", Tag: "VERB", MinStem: 3},
			{Suffix: "ir", Tag: "VERB", MinStem: 3},
			{Suffix: "ando", Tag: "VERB", MinStem: 2},
			{Suffix: "iendo", Tag: "VERB", MinStem: 2},
			{Suffix: "aron", Tag: "VERB", MinStem: 3},
			{Suffix: "ieron", Tag: "VERB", MinStem: 2},
			{Suffix: "ado", Tag: "VERB", MinStem: 3},
			{Suffix: "ido", Tag: "VERB", MinStem: 3},
		},
		LemmaRules: []LemmaRule{
			{Suffix: "ciones", Replace: "ción", Tags: []string{"NOUN"}, MinStem: 1},
			{Suffix: "ces", Replace: "z", Tags: []string{"NOUN"}, MinStem: 2},
			{Suffix: "es", Replace: "", Tags: []string{"NOUN"}, MinStem: 3},
			{Suffix: "s", Replace: "", Tags: []string{"NOUN", "ADJ"}, MinStem: 3},
			{Suffix: "ando", Replace: "ar", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "iendo", Replace: "er", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "aron", Replace: "ar", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "ieron", Replace: "er", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "ado", Replace: "ar", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "ido", Replace: "er", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "osa", Replace: "oso", Tags: []string{"ADJ"}, MinStem: 2},
		},
		Abbreviations: []string{"sr", "sra", "srta", "dr", "dra", "ud", "uds", "etc", "pág", "núm", "av"},
		Sentiment: map[string]float64{
			"bueno": 1.9, "buena": 1.9, "excelente": 3.1, "genial": 2.8, "maravilloso": 2.8, "amor": 3.0, "feliz": 2.7,
			"bonito": 2.2, "hermoso": 2.7, "éxito": 2.7, "mejor": 2.0, "positivo": 2.2, "perfecto": 2.7,
			"fácil": 1.6, "ganar": 2.4, "alegría": 2.7, "útil": 1.7,
			"malo": -2.5, "mala": -2.5, "terrible": -2.5, "horrible": -2.6, "odio": -2.7, "peor": -2.3,
			"triste": -2.1, "negativo": -2.2, "problema": -1.7, "error": -1.8, "difícil": -1.4,
			"crisis": -3.0, "guerra": -2.9, "muerte": -2.9, "pérdida": -1.6, "riesgo": -1.1, "fracaso": -2.4,
		},
		Negations:    []string{"no", "nunca", "jamás", "nada", "nadie", "ni", "sin", "tampoco"},
		OrgMarkers:   []string{"sa", "s.a", "sl", "s.l", "universidad", "instituto", "banco", "asociación", "fundación", "ministerio", "partido", "compañía", "empresa"},
		LocationCues: []string{"en", "desde", "hacia", "de"},
		Labels:       EntityLabels{Person: "PER", Organization: "ORG", Location: "LOC", Misc: "MISC", Date: "MISC"},
	}
}
