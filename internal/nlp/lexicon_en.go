package nlp

func englishLexicon() *Lexicon {
	return &Lexicon{
		StopWords: []string{
			"also", "just", "only", "very", "so", "too", "then", "than", "there", "here",
			"such", "own", "same", "other", "more", "most", "some", "any", "each", "few",
			"again", "once", "now", "ever", "even", "well", "however", "yet", "still", "much",
			"many", "get", "got", "make", "made", "like", "one", "s", "t", "'s",
		},
		ClosedClass: closed(map[string][]string{
			"DET":   {"the", "a", "an", "this", "that", "these", "those", "every", "each", "some", "any", "no", "all", "both", "either", "neither", "another", "my", "your", "his", "its", "our", "their"},
			"PRON":  {"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them", "mine", "yours", "ours", "theirs", "myself", "yourself", "himself", "herself", "itself", "ourselves", "themselves", "who", "whom", "whose", "what", "which", "something", "anything", "nothing", "everything", "someone", "anyone", "everyone"},
			"ADP":   {"of", "in", "on", "at", "by", "for", "with", "about", "against", "between", "into", "through", "during", "before", "after", "above", "below", "from", "up", "down", "over", "under", "without", "within", "across", "among", "toward", "towards", "upon", "since", "via"},
			"CCONJ": {"and", "or", "but", "nor", "yet"},
			"SCONJ": {"if", "because", "while", "although", "though", "unless", "whether", "until", "as", "where", "when", "whereas"},
			"AUX":   {"is", "are", "was", "were", "be", "been", "being", "am", "have", "has", "had", "having", "do", "does", "did", "will", "would", "shall", "should", "can", "could", "may", "might", "must", "'re", "'ve", "'ll", "'d", "'m"},
			"PART":  {"to", "not", "n't"},
			"ADV":   {"very", "too", "also", "just", "only", "then", "now", "here", "there", "always", "never", "often", "sometimes", "again", "already", "soon", "still", "quite", "rather", "almost", "how", "why"},
			"INTJ":  {"oh", "hello", "hi", "wow", "yes", "ok", "okay"},
		}),
		Lemmas: map[string]string{
			"is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be", "am": "be", "'m": "be", "'re": "be",
			"has": "have", "had": "have", "having": "have", "'ve": "have",
			"does": "do", "did": "do", "done": "do", "doing": "do",
			"went": "go", "gone": "go", "goes": "go",
			"said": "say", "says": "say", "made": "make", "took": "take", "taken": "take",
			"came": "come", "saw": "see", "seen": "see", "knew": "know", "known": "know",
			"got": "get", "gotten": "get", "gave": "give", "given": "give", "found": "find",
			"thought": "think", "told": "tell", "became": "become", "left": "leave", "felt": "feel",
			"brought": "bring", "began": "begin", "begun": "begin", "kept": "keep", "held": "hold",
			"wrote": "write", "written": "write", "stood": "stand", "heard": "hear", "meant": "mean",
			"met": "meet", "ran": "run", "paid": "pay", "sat": "sit", "spoke": "speak", "spoken": "speak",
			"children": "child", "men": "man", "women": "woman", "people": "person", "mice": "mouse",
			"feet": "foot", "teeth": "tooth", "geese": "goose", "data": "datum",
			"better": "good", "best": "good", "worse": "bad", "worst": "bad",
			"n't": "not", "'ll": "will", "'d": "would", "me": "i", "us": "we", "him": "he", "them": "they",
		},
		Suffixes: []SuffixTag{
			{Suffix: "ly", Tag: "ADV", MinStem: 3},
			{Suffix: "ing", Tag: "VERB", MinStem: 3},
			{Suffix: "ed", Tag: "VERB", MinStem: 3},
			{Suffix: "ize", Tag: "VERB", MinStem: 3},
			{Suffix: "ise", Tag: "VERB", MinStem: 4},
			{Suffix: "ify", Tag: "VERB", MinStem: 3},
			{Suffix: "ate", Tag: "VERB", MinStem: 4},
			{Suffix: "ous", Tag: "ADJ", MinStem: 3},
			{Suffix: "ful", Tag: "ADJ", MinStem: 3},
			{Suffix: "less", Tag: "ADJ", MinStem: 3},
			{Suffix: "able", Tag: "ADJ", MinStem: 3},
			{Suffix: "ible", Tag: "ADJ", MinStem: 3},
			{Suffix: "ive", Tag: "ADJ", MinStem: 3},
			{Suffix: "ical", Tag: "ADJ", MinStem: 2},
			{Suffix: "al", Tag: "ADJ", MinStem: 4},
			{Suffix: "ic", Tag: "ADJ", MinStem: 4},
			{Suffix: "ish", Tag: "ADJ", MinStem: 3},
			{Suffix: "est", Tag: "ADJ", MinStem: 4},
		},
		LemmaRules: []LemmaRule{
			{Suffix: "ies", Replace: "y", Tags: []string{"NOUN", "VERB"}, MinStem: 2},
			{Suffix: "ied", Replace: "y", Tags: []string{"VERB"}, MinStem: 2},
			{Suffix: "sses", Replace: "ss", Tags: []string{"NOUN", "VERB"}, MinStem: 1},
			{Suffix: "ches", Replace: "ch", Tags: []string{"NOUN", "VERB"}, MinStem: 1},
			{Suffix: "shes", Replace: "sh", Tags: []string{"NOUN", "VERB"}, MinStem: 1},
			{Suffix: "xes", Replace: "x", Tags: []string{"NOUN", "VERB"}, MinStem: 1},
			{Suffix: "ing", Replace: "", Tags: []string{"VERB"}, MinStem: 3},
			{Suffix: "ed", Replace: "", Tags: []string{"VERB"}, MinStem: 3},
			{Suffix: "ss", Replace: "ss", Tags: []string{"NOUN"}, MinStem: 1},
			{Suffix: "us", Replace: "us", Tags: []string{"NOUN"}, MinStem: 1},
			{Suffix: "is", Replace: "is", Tags: []string{"NOUN"}, MinStem: 1},
			{Suffix: "s", Replace: "", Tags: []string{"NOUN", "VERB"}, MinStem: 3},
		},
		Abbreviations: []string{"mr", "mrs", "ms", "dr", "prof", "st", "vs", "etc", "e.g", "i.e", "inc", "jr", "sr", "no", "fig", "u.s"},
		Sentiment: map[string]float64{
			"good": 1.9, "great": 3.1, "excellent": 3.2, "amazing": 2.8, "wonderful": 2.7, "love": 3.2,
			"like": 1.5, "happy": 2.7, "nice": 1.8, "best": 3.2, "better": 1.9, "positive": 2.3,
			"beautiful": 2.9, "success": 2.7, "successful": 2.8, "enjoy": 2.2, "fantastic": 2.6,
			"helpful": 1.8, "easy": 1.9, "win": 2.8, "benefit": 2.0, "improve": 1.9, "perfect": 2.7,
			"bad": -2.5, "terrible": -2.1, "awful": -2.0, "horrible": -2.5, "hate": -2.7, "worst": -3.1,
			"worse": -2.1, "poor": -2.1, "sad": -2.1, "angry": -2.3, "negative": -2.7, "fail": -2.3,
			"failure": -2.3, "problem": -1.7, "wrong": -2.1, "ugly": -2.3, "difficult": -1.5,
			"crisis": -3.1, "war": -2.9, "death": -2.9, "kill": -3.7, "lose": -1.3, "loss": -1.3, "risk": -1.1,
		},
		Negations:    []string{"not", "n't", "no", "never", "none", "nobody", "nothing", "neither", "nor", "without"},
		OrgMarkers:   []string{"inc", "corp", "corporation", "ltd", "llc", "company", "co", "university", "institute", "bank", "group", "association", "foundation", "agency", "ministry", "council", "party"},
		LocationCues: []string{"in", "at", "from", "near", "across", "to"},
		Labels:       EntityLabels{Person: "PERSON", Organization: "ORG", Location: "GPE", Misc: "NORP", Date: "DATE"},
	}
}
