package nlp

func germanLexicon() *Lexicon {
	return &Lexicon{
		StopWords: []string{
			"auch", "noch", "nur", "schon", "sehr", "so", "dann", "mehr", "hier", "dort",
			"immer", "wieder", "man", "etwa", "bereits", "jedoch", "sowie", "z", "b",
		},
		ClosedClass: closed(map[string][]string{
			"DET":   {"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen", "einem", "einer", "eines", "kein", "keine", "keinen", "keinem", "keiner", "dieser", "diese", "dieses", "diesen", "diesem", "jeder", "jede", "jedes", "jeden", "alle", "mein", "meine", "dein", "seine", "ihr", "ihre", "unser", "unsere", "euer"},
			"PRON":  {"ich", "du", "er", "sie", "es", "wir", "mich", "dich", "sich", "uns", "euch", "ihm", "ihn", "ihnen", "mir", "dir", "wer", "was", "man", "jemand", "niemand", "etwas", "nichts", "welche", "welcher"},
			"ADP":   {"in", "im", "an", "am", "auf", "aus", "bei", "mit", "nach", "von", "vom", "zu", "zum", "zur", "für", "über", "unter", "vor", "hinter", "neben", "zwischen", "durch", "gegen", "ohne", "um", "seit", "bis", "während", "wegen", "trotz", "ins"},
			"CCONJ": {"und", "oder", "aber", "sondern", "denn", "sowie"},
			"SCONJ": {"dass", "weil", "ob", "wenn", "als", "obwohl", "damit", "bevor", "nachdem"},
			"AUX":   {"ist", "sind", "war", "waren", "bin", "bist", "seid", "sein", "gewesen", "hat", "haben", "hatte", "hatten", "habe", "hast", "wird", "werden", "wurde", "wurden", "worden", "kann", "können", "konnte", "muss", "müssen", "soll", "sollen", "sollte", "will", "wollen", "darf", "dürfen", "mag", "möchte"},
			"PART":  {"nicht", "ja", "doch"},
			"ADV":   {"auch", "noch", "nur", "schon", "sehr", "dann", "hier", "dort", "immer", "wieder", "heute", "jetzt", "oft", "nie", "bereits", "jedoch", "so", "da", "wie", "warum"},
		}),
		Lemmas: map[string]string{
			"ist": "sein", "sind": "sein", "war": "sein", "waren": "sein", "bin": "sein", "bist": "sein", "seid": "sein", "gewesen": "sein",
			"hat": "haben", "hatte": "haben", "hatten": "haben", "habe": "haben", "hast": "haben",
			"wird": "werden", "wurde": "werden", "wurden": "werden", "worden": "werden",
			"kann": "können", "konnte": "können", "muss": "müssen", "soll": "sollen", "sollte": "sollen",
			"will": "wollen", "darf": "dürfen", "mag": "mögen", "möchte": "mögen",
			"der": "der", "die": "der", "das": "der", "den": "der", "dem": "der", "des": "der",
			"eine": "ein", "einen": "ein", "einem": "ein", "einer": "ein", "eines": "ein",
			"im": "in", "am": "an", "vom": "von", "zum": "zu", "zur": "zu", "ins": "in",
			"mich": "ich", "mir": "ich", "dich": "du", "dir": "du", "ihn": "er", "ihm": "er", "uns": "wir",
		},
		Suffixes: []SuffixTag{
			{Suffix: "lich", Tag: "ADJ", MinStem: 3},
			{Suffix: "ig", Tag: "ADJ", MinStem: 3},
			{Suffix: "isch", Tag: "ADJ", MinStem: 3},
			{Suffix: "bar", Tag: "ADJ", MinStem: 3},
			{Suffix: "los", Tag: "ADJ", MinStem: 3},
			{Suffix: "sam", Tag: "ADJ", MinStem: 3},
			{Suffix: "weise", Tag: "ADV", MinStem: 3},
			{Suffix: "ieren", Tag: "VERB", MinStem: 2},
			{Suffix: "iert", Tag: "VERB", MinStem: 2},
			{Suffix: "en", Tag: "VERB", MinStem: 3},
			{Suffix: "et", Tag: "VERB", MinStem: 3},
			{Suffix: "te", Tag: "VERB", MinStem: 3},
			{Suffix: "t", Tag: "VERB", MinStem: 4},
		},
		LemmaRules: []LemmaRule{
			{Suffix: "ungen", Replace: "ung", Tags: []string{"NOUN"}, MinStem: 2},
			{Suffix: "heiten", Replace: "heit", Tags: []string{"NOUN"}, MinStem: 2},
			{Suffix: "keiten", Replace: "keit", Tags: []string{"NOUN"}, MinStem: 2},
			{Suffix: "innen", Replace: "in", Tags: []string{"NOUN"}, MinStem: 2},
			{Suffix: "iert", Replace: "ieren", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "te", Replace: "en", Tags: []string{"VERB"}, MinStem: 3},
			{Suffix: "et", Replace: "en", Tags: []string{"VERB"}, MinStem: 3},
			{Suffix: "st", Replace: "en", Tags: []string{"VERB"}, MinStem: 3},
			{Suffix: "t", Replace: "en", Tags: []string{"VERB"}, MinStem: 3},
			{Suffix: "e", Replace: "en", Tags: []string{"VERB"}, MinStem: 3},
			{Suffix: "er", Replace: "", Tags: []string{"ADJ"}, MinStem: 4},
			{Suffix: "en", Replace: "", Tags: []string{"ADJ"}, MinStem: 4},
			{Suffix: "es", Replace: "", Tags: []string{"ADJ"}, MinStem: 4},
			{Suffix: "em", Replace: "", Tags: []string{"ADJ"}, MinStem: 4},
			{Suffix: "e", Replace: "", Tags: []string{"ADJ"}, MinStem: 4},
		},
		CapitalizedNouns: true,
		Abbreviations:    []string{"z.b", "bzw", "usw", "vgl", "ca", "dr", "prof", "nr", "str", "d.h", "u.a", "evtl"},
		Sentiment: map[string]float64{
			"gut": 1.9, "toll": 2.6, "super": 2.9, "hervorragend": 3.1, "schön": 2.4, "liebe": 3.0, "lieben": 3.0,
			"glücklich": 2.7, "erfolg": 2.5, "erfolgreich": 2.6, "freude": 2.6, "besser": 1.9, "beste": 3.0,
			"positiv": 2.2, "hilfreich": 1.8, "einfach": 1.2, "perfekt": 2.7, "gewinnen": 2.5,
			"schlecht": -2.5, "schrecklich": -2.6, "furchtbar": -2.5, "hass": -2.7, "hassen": -2.7,
			"traurig": -2.1, "wütend": -2.3, "negativ": -2.2, "problem": -1.7, "fehler": -1.8, "falsch": -2.0,
			"schwierig": -1.4, "krise": -3.0, "krieg": -2.9, "tod": -2.9, "verlust": -1.5, "risiko": -1.1,
		},
		Negations:    []string{"nicht", "kein", "keine", "keinen", "nie", "niemals", "nichts", "ohne", "weder"},
		OrgMarkers:   []string{"gmbh", "ag", "kg", "ev", "e.v", "universität", "hochschule", "institut", "bank", "verband", "stiftung", "ministerium", "partei", "gesellschaft"},
		LocationCues: []string{"in", "aus", "nach", "bei"},
		Labels:       EntityLabels{Person: "PER", Organization: "ORG", Location: "LOC", Misc: "MISC", Date: "MISC"},
	}
}
