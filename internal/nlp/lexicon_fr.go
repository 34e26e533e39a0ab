package nlp

func frenchLexicon() *Lexicon {
	return &Lexicon{
		StopWords: []string{
			"aussi", "très", "plus", "moins", "déjà", "ici", "là", "tout", "tous", "toute",
			"autre", "autres", "même", "chaque", "seulement", "bien", "encore", "ainsi", "c'est", "d'un",
		},
		ClosedClass: closed(map[string][]string{
			"DET":   {"le", "la", "les", "l'", "un", "une", "des", "du", "ce", "cet", "cette", "ces", "mon", "ma", "mes", "ton", "ta", "tes", "son", "sa", "ses", "notre", "nos", "votre", "vos", "leur", "leurs", "chaque", "quelque", "quelques", "aucun", "aucune"},
			"PRON":  {"je", "j'", "tu", "il", "elle", "on", "nous", "vous", "ils", "elles", "me", "m'", "te", "t'", "se", "s'", "lui", "eux", "qui", "que", "qu'", "quoi", "dont", "où", "cela", "ça", "ceci", "rien", "personne", "quelqu'un", "y", "en"},
			"ADP":   {"à", "au", "aux", "de", "d'", "dans", "par", "pour", "sur", "sous", "avec", "sans", "entre", "vers", "chez", "contre", "depuis", "pendant", "avant", "après", "selon", "parmi", "malgré"},
			"CCONJ": {"et", "ou", "mais", "donc", "or", "ni", "car"},
			"SCONJ": {"si", "quand", "lorsque", "comme", "puisque", "parce", "bien que"},
			"AUX":   {"est", "sont", "était", "étaient", "été", "être", "suis", "es", "sommes", "êtes", "sera", "seront", "a", "ont", "avait", "avaient", "avoir", "ai", "as", "avons", "avez", "aura", "peut", "peuvent", "doit", "doivent", "fut"},
			"PART":  {"ne", "n'", "pas"},
			"ADV":   {"très", "plus", "moins", "déjà", "ici", "là", "aussi", "toujours", "jamais", "souvent", "maintenant", "aujourd'hui", "encore", "bien", "mal", "ainsi", "trop", "beaucoup"},
		}),
		Lemmas: map[string]string{
			"est": "être", "sont": "être", "était": "être", "étaient": "être", "été": "être", "suis": "être", "es": "être", "sommes": "être", "êtes": "être", "sera": "être", "seront": "être", "fut": "être",
			"a": "avoir", "ont": "avoir", "avait": "avoir", "avaient": "avoir", "ai": "avoir", "as": "avoir", "avons": "avoir", "avez": "avoir", "aura": "avoir",
			"peut": "pouvoir", "peuvent": "pouvoir", "doit": "devoir", "doivent": "devoir",
			"la": "le", "les": "le", "l'": "le", "une": "un", "des": "un", "du": "de", "d'": "de", "au": "à", "aux": "à",
			"j'": "je", "m'": "me", "t'": "te", "s'": "se", "qu'": "que", "n'": "ne",
		},
		Suffixes: []SuffixTag{
			{Suffix: "ment", Tag: "ADV", MinStem: 4},
			{Suffix: "tion", Tag: "NOUN", MinStem: 2},
			{Suffix: "tions", Tag: "NOUN", MinStem: 2},
			{Suffix: "ité", Tag: "NOUN", MinStem: 3},
			{Suffix: "isme", Tag: "NOUN", MinStem: 3},
			{Suffix: "eux", Tag: "ADJ", MinStem: 3},
			{Suffix: "euse", Tag: "ADJ", MinStem: 3},
			{Suffix: "ique", Tag: "ADJ", MinStem: 3},
			{Suffix: "able", Tag: "ADJ", MinStem: 3},
			{Suffix: "if", Tag: "ADJ", MinStem: 3},
			{Suffix: "ive", Tag: "ADJ", MinStem: 3},
			{Suffix: "er", Tag: "VERB", MinStem: 3},
			{Suffix: "ir", Tag: "VERB", MinStem: 3},
			{Suffix: "ant", Tag: "VERB", MinStem: 3},
			{Suffix: "ait", Tag: "VERB", MinStem: 3},
			{Suffix: "aient", Tag: "VERB", MinStem: 2},
			{Suffix: "ent", Tag: "VERB", MinStem: 4},
			{Suffix: "é", Tag: "VERB", MinStem: 3},
		},
		LemmaRules: []LemmaRule{
			{Suffix: "tions", Replace: "tion", Tags: []string{"NOUN"}, MinStem: 1},
			{Suffix: "aux", Replace: "al", Tags: []string{"NOUN", "ADJ"}, MinStem: 2},
			{Suffix: "s", Replace: "", Tags: []string{"NOUN", "ADJ"}, MinStem: 3},
			{Suffix: "x", Replace: "", Tags: []string{"NOUN"}, MinStem: 3},
			{Suffix: "euse", Replace: "eux", Tags: []string{"ADJ"}, MinStem: 2},
			{Suffix: "ive", Replace: "if", Tags: []string{"ADJ"}, MinStem: 2},
			{Suffix: "aient", Replace: "er", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "ait", Replace: "er", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "ant", Replace: "er", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "ent", Replace: "er", Tags: []string{"VERB"}, MinStem: 3},
			{Suffix: "é", Replace: "er", Tags: []string{"VERB"}, MinStem: 2},
		},
		Abbreviations: []string{"m", "mme", "mlle", "dr", "etc", "cf", "p", "st", "ste", "n°"},
		Sentiment: map[string]float64{
			"bon": 1.9, "bonne": 1.9, "excellent": 3.1, "génial": 2.8, "merveilleux": 2.8, "amour": 3.0, "aimer": 2.6,
			"heureux": 2.7, "beau": 2.3, "belle": 2.3, "succès": 2.7, "meilleur": 2.0, "positif": 2.2,
			"parfait": 2.7, "facile": 1.6, "gagner": 2.4, "joie": 2.7, "utile": 1.7,
			"mauvais": -2.5, "mauvaise": -2.5, "terrible": -2.5, "horrible": -2.6, "haine": -2.7, "pire": -2.4,
			"triste": -2.1, "négatif": -2.2, "problème": -1.7, "erreur": -1.8, "difficile": -1.4,
			"crise": -3.0, "guerre": -2.9, "mort": -2.9, "perte": -1.6, "risque": -1.1, "échec": -2.4,
		},
		Negations:    []string{"ne", "n'", "pas", "jamais", "rien", "personne", "aucun", "aucune", "sans", "ni"},
		OrgMarkers:   []string{"sa", "s.a", "sarl", "sas", "université", "institut", "banque", "association", "fondation", "ministère", "parti", "société", "compagnie"},
		LocationCues: []string{"à", "en", "de", "depuis", "vers"},
		Labels:       EntityLabels{Person: "PER", Organization: "ORG", Location: "LOC", Misc: "MISC", Date: "MISC"},
	}
}
