package extraction

// stopWords is the token exclusion set: standard English stop words plus
// resume-domain filler terms that carry no signal for gap analysis.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range englishStopWords {
		stopWords[w] = struct{}{}
	}
	for _, w := range resumeFillerWords {
		stopWords[w] = struct{}{}
	}
}

var englishStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "cannot",
	"could", "did", "do", "does", "doing", "down", "during", "each", "few",
	"for", "from", "further", "had", "has", "have", "having", "he", "her",
	"here", "hers", "herself", "him", "himself", "his", "how", "i", "if",
	"in", "into", "is", "it", "its", "itself", "just", "me", "more", "most",
	"my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once",
	"only", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
	"same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "these",
	"they", "this", "those", "through", "to", "too", "under", "until", "up",
	"very", "was", "we", "were", "what", "when", "where", "which", "while",
	"who", "whom", "why", "will", "with", "would", "you", "your", "yours",
	"yourself", "yourselves",
}

var resumeFillerWords = []string{
	"ability", "able", "also", "applicant", "apply", "best", "candidate",
	"candidates", "company", "demonstrated", "description", "etc",
	"excellent", "experience", "experienced", "familiar", "familiarity",
	"good", "great", "ideal", "include", "includes", "including", "job",
	"knowledge", "looking", "member", "must", "new", "opportunity", "per",
	"plus", "position", "preferred", "proven", "required", "requirement",
	"requirements", "responsibilities", "responsible", "role", "salary",
	"seeking", "skill", "skills", "strong", "team", "understanding", "using", "well",
	"willing", "work", "working", "years",
}

func isStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
