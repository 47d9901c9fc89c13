package keyword

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"
)

var tfidfTokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// englishStopWords is the stop word list applied at vectorization time. It is
// independent of the textnorm stopword set.
var englishStopWords = toSet(strings.Fields(`
a about above across after afterwards again against all almost alone along already
also although always am among amongst amoungst amount an and another any anyhow
anyone anything anyway anywhere are around as at back be became because become
becomes becoming been before beforehand behind being below beside besides between
beyond bill both bottom but by call can cannot cant co con could couldnt cry de
describe detail do done down due during each eg eight either eleven else elsewhere
empty enough etc even ever every everyone everything everywhere except few fifteen
fifty fill find fire first five for former formerly forty found four from front
full further get give go had has hasnt have he hence her here hereafter hereby
herein hereupon hers herself him himself his how however hundred i ie if in inc
indeed interest into is it its itself keep last latter latterly least less ltd
made many may me meanwhile might mill mine more moreover most mostly move much
must my myself name namely neither never nevertheless next nine no nobody none
noone nor not nothing now nowhere of off often on once one only onto or other
others otherwise our ours ourselves out over own part per perhaps please put
rather re same see seem seemed seeming seems serious several she should show side
since sincere six sixty so some somehow someone something sometime sometimes
somewhere still such system take ten than that the their them themselves then
thence there thereafter thereby therefore therein thereupon these they thick thin
third this those though three through throughout thru thus to together too top
toward towards twelve twenty two un under until up upon us very via was we well
were what whatever when whence whenever where whereafter whereas whereby wherein
whereupon wherever whether which while whither who whoever whole whom whose why
will with within without would yet you your yours yourself yourselves
`))

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// tfidfTokens lowercases text and returns tokens of two or more word characters
// that are not stop words.
func tfidfTokens(text string) []string {
	raw := tfidfTokenRe.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, token := range raw {
		if utf8.RuneCountInString(token) < 2 {
			continue
		}
		if _, stop := englishStopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// TFIDFSimilarity fits a TF-IDF model on the two documents and returns the cosine
// similarity of their vectors in [0,1]. Raw term counts are weighted with the
// smoothed idf ln((1+n)/(1+df))+1 and each vector is L2-normalised. An empty
// vocabulary yields 0.
func TFIDFSimilarity(a, b string) float64 {
	docs := [2][]string{tfidfTokens(a), tfidfTokens(b)}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}
	if len(df) == 0 {
		return 0
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	n := float64(len(docs))
	var vectors [2][]float64
	for d, doc := range docs {
		vec := make([]float64, len(vocab))
		for _, term := range doc {
			vec[index[term]]++
		}
		for i, term := range vocab {
			if vec[i] > 0 {
				vec[i] *= math.Log((1+n)/(1+float64(df[term]))) + 1
			}
		}
		if norm := floats.Norm(vec, 2); norm > 0 {
			floats.Scale(1/norm, vec)
		}
		vectors[d] = vec
	}

	sim := floats.Dot(vectors[0], vectors[1])
	return math.Min(math.Max(sim, 0), 1)
}
