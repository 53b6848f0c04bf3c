package chunker

// Word-level substitutions used when no index entry covers a single word.
var engToPidginRules = map[string]string{
	"the":   "da",
	"that":  "dat",
	"this":  "dis",
	"them":  "dem",
	"they":  "dey",
	"with":  "wit",
	"for":   "fo",
	"about": "bout",
	"going": "goin",
	"am":    "stay",
	"is":    "stay",
	"are":   "stay",
}

var pidginToEngRules = map[string]string{
	"da":     "the",
	"dat":    "that",
	"dis":    "this",
	"dem":    "them",
	"dey":    "they",
	"wit":    "with",
	"fo":     "for",
	"bout":   "about",
	"goin":   "going",
	"stay":   "am/is/are",
	"grindz": "food",
	"ono":    "delicious",
	"choke":  "a lot",
	"pau":    "finished",
	"hana":   "work",
}
