package scorer

// English stopwords excluded from term statistics. Short tokens (<3 chars)
// are filtered before this list applies.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "him": true, "his": true, "how": true,
	"its": true, "may": true, "new": true, "now": true, "old": true,
	"see": true, "two": true, "who": true, "did": true, "get": true,
	"this": true, "that": true, "with": true, "from": true, "they": true,
	"will": true, "would": true, "there": true, "their": true, "what": true,
	"about": true, "which": true, "when": true, "were": true, "been": true,
	"more": true, "also": true, "some": true, "these": true, "than": true,
	"then": true, "them": true, "into": true, "only": true, "other": true,
	"such": true, "over": true, "most": true, "between": true, "each": true,
	"because": true, "both": true, "under": true, "while": true, "where": true,
	"after": true, "before": true, "during": true, "through": true,
	"should": true, "could": true, "does": true, "must": true, "upon": true,
	"very": true, "much": true, "many": true, "same": true, "used": true,
	"using": true, "based": true, "however": true, "therefore": true,
	"thus": true, "since": true, "being": true, "within": true,
}
