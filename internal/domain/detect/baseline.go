package detect

// baselineWords is the closed list of basic-level German function words and
// common short forms that the detector never flags, whatever their shape.
// It approximates a B1 learner's assumed vocabulary and is static
// configuration: it is read-only and shared by every detector instance unless
// a caller supplies its own list.
var baselineWords = []string{
	"das", "der", "die", "und", "in", "den", "von", "mit", "sich", "auf",
	"für", "ist", "im", "dem", "nicht", "ein", "eine", "als", "auch", "es",
	"an", "werden", "aus", "er", "hat", "dass", "sie", "nach", "wird", "bei",
	"einer", "um", "am", "noch", "wie", "einem", "über", "einen", "so", "zum",
	"zur", "zurück", "nur", "vor", "bis", "mehr", "durch", "man", "sein",
	"hier", "doch", "unter", "weil", "soll", "ich", "eines", "da", "beim",
	"seit", "haben", "mir", "gegen", "vom", "kann", "schon", "wenn", "habe",
	"ihr", "dann", "wir", "sollte", "etwas", "nichts", "ohne", "selbst",
	"jetzt", "alle", "beide", "dabei", "ihm", "ihn", "ihnen", "ihre", "ihrer",
	"ihres", "mein", "meine", "meiner", "meines", "dein", "deine", "deiner",
	"deines", "seine", "seiner", "seines", "unser", "unsere", "unserer",
	"unseres", "euer", "eure", "eurer", "eures",
}

// DefaultBaseline returns a copy of the stock baseline vocabulary list.
func DefaultBaseline() []string {
	words := make([]string, len(baselineWords))
	copy(words, baselineWords)
	return words
}
