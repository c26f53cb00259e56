// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

// englishStopWords is the stop-word list applied to candidate n-grams.
// A candidate never starts or ends with one of these.
var englishStopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"against": true, "all": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "aren't": true, "as": true, "at": true,
	"be": true, "because": true, "been": true, "before": true, "being": true,
	"below": true, "between": true, "both": true, "but": true, "by": true,
	"can": true, "cannot": true, "could": true, "couldn't": true,
	"did": true, "didn't": true, "do": true, "does": true, "doesn't": true,
	"doing": true, "don't": true, "down": true, "during": true,
	"each": true, "else": true, "ever": true, "every": true,
	"few": true, "for": true, "from": true, "further": true,
	"had": true, "hadn't": true, "has": true, "hasn't": true, "have": true,
	"haven't": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "herself": true, "him": true, "himself": true, "his": true,
	"how": true, "however": true,
	"i": true, "if": true, "in": true, "into": true, "is": true,
	"isn't": true, "it": true, "its": true, "itself": true,
	"just": true,
	"let": true, "like": true,
	"may": true, "me": true, "might": true, "more": true, "most": true,
	"must": true, "my": true, "myself": true,
	"no": true, "nor": true, "not": true, "now": true,
	"of": true, "off": true, "on": true, "once": true, "only": true,
	"or": true, "other": true, "ought": true, "our": true, "ours": true,
	"ourselves": true, "out": true, "over": true, "own": true,
	"same": true, "shall": true, "she": true, "should": true,
	"shouldn't": true, "since": true, "so": true, "some": true, "such": true,
	"than": true, "that": true, "the": true, "their": true, "theirs": true,
	"them": true, "themselves": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"to": true, "too": true,
	"under": true, "until": true, "up": true, "upon": true,
	"very": true,
	"was": true, "wasn't": true, "we": true, "were": true, "weren't": true,
	"what": true, "when": true, "where": true, "which": true, "while": true,
	"who": true, "whom": true, "why": true, "will": true, "with": true,
	"won't": true, "would": true, "wouldn't": true,
	"yet": true, "you": true, "your": true, "yours": true, "yourself": true,
	"yourselves": true,
}
