package etterna

// JudgementCounts is the six-way tap judgement tally of one score. The six
// fields are always produced together; a partially read tally is no tally.
type JudgementCounts struct {
	Marvelouses int
	Perfects    int
	Greats      int
	Goods       int
	Bads        int
	Misses      int
}

// Total returns the number of judged taps.
func (j JudgementCounts) Total() int {
	return j.Marvelouses + j.Perfects + j.Greats + j.Goods + j.Bads + j.Misses
}
