package textnorm

// builtinLexicon covers informal Mexican Spanish spellings common in reviews
// and social posts. Multi-word and apostrophe forms come before the short
// keys that could otherwise match inside them.
var builtinLexicon = Lexicon{
	ID:      "es-mx-informal",
	Version: "1.0",
	Entries: []Contraction{
		{From: "q'huvo", To: "que hubo"},
		{From: "q’huvo", To: "que hubo"},
		{From: "quihubo", To: "que hubo"},
		{From: "la neta", To: "la verdad"},
		{From: "neta", To: "verdad"},
		{From: "tamos", To: "estamos"},
		{From: "toy", To: "estoy"},
		{From: "tas", To: "estas"},
		{From: "ta", To: "esta"},
		{From: "pq", To: "porque"},
		{From: "xq", To: "porque"},
		{From: "porq", To: "porque"},
		{From: "xfa", To: "por favor"},
		{From: "porfa", To: "por favor"},
		{From: "q", To: "que"},
		{From: "k", To: "que"},
		{From: "tmb", To: "también"},
		{From: "tb", To: "también"},
		{From: "x", To: "por"},
		{From: "d", To: "de"},
		{From: "pa", To: "para"},
		{From: "pos", To: "pues"},
		{From: "ps", To: "pues"},
		{From: "ntp", To: "no te preocupes"},
		{From: "nel", To: "no"},
		{From: "bn", To: "bien"},
		{From: "vdd", To: "verdad"},
		{From: "dnd", To: "donde"},
		{From: "msj", To: "mensaje"},
		{From: "tqm", To: "te quiero mucho"},
		{From: "grax", To: "gracias"},
		{From: "cel", To: "celular"},
	},
}

// DefaultLexicon returns a copy of the built-in lexicon.
func DefaultLexicon() *Lexicon {
	return builtinLexicon.clone()
}
