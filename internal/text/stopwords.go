package text

// stopwords is the closed list of Russian function words dropped during
// tokenization. The negation particle «не» is intentionally absent: it is the
// only function word that carries contradiction signal, and keeping it is what
// separates «может» from «не может» at the token level.
var stopwords = map[string]struct{}{
	"и": {}, "в": {}, "во": {}, "на": {}, "с": {}, "со": {},
	"по": {}, "к": {}, "ко": {}, "о": {}, "об": {}, "обо": {},
	"от": {}, "до": {}, "за": {}, "из": {}, "у": {}, "же": {},
	"бы": {}, "ли": {}, "как": {}, "что": {}, "это": {}, "этот": {},
	"эта": {}, "его": {}, "ее": {}, "её": {}, "их": {}, "для": {},
	"или": {}, "но": {}, "а": {}, "то": {}, "при": {}, "под": {},
	"над": {}, "том": {}, "также": {}, "либо": {},
}
