// Package detect finds diagram blocks in a classified document.
//
// Detection is two-phase: a cheap whole-document density scan that lets
// non-diagram text pass through untouched, then a grouping walk that turns
// consecutive boxy lines into blocks and scores each block's confidence.
package detect

import (
	"aadc/internal/box"
	"aadc/internal/classify"
)

// QuickScanThreshold is the minimum fraction of scanned lines that must
// contain a box glyph before full processing runs.
const QuickScanThreshold = 0.01

// quickScanLimit caps how many lines the prefilter inspects.
const quickScanLimit = 1000

// ScanResult summarizes the density prefilter decision.
type ScanResult struct {
	LinesScanned      int
	LinesWithBoxChars int
	Ratio             float64
	LikelyHasDiagrams bool
}

// QuickScan samples up to quickScanLimit lines and reports whether the
// box-glyph density clears QuickScanThreshold. Runs before any per-line
// classification so plain documents are rejected in near-constant time.
func QuickScan(lines []string) ScanResult {
	res := ScanResult{}
	for _, line := range lines {
		if res.LinesScanned >= quickScanLimit {
			break
		}
		res.LinesScanned++
		if containsBoxChar(line) {
			res.LinesWithBoxChars++
		}
	}
	if res.LinesScanned > 0 {
		res.Ratio = float64(res.LinesWithBoxChars) / float64(res.LinesScanned)
	}
	res.LikelyHasDiagrams = res.Ratio >= QuickScanThreshold
	return res
}

// Block is a maximal run of consecutive diagram lines, a half-open line
// range over the document. Blocks are created once per scanning pass and
// never merged or split afterwards.
type Block struct {
	Start      int
	End        int
	Confidence float64
}

// Len returns the number of lines in the block.
func (b Block) Len() int { return b.End - b.Start }

// DefaultBlockThreshold is the confidence a block needs to be corrected
// unless the caller forces all blocks.
const DefaultBlockThreshold = 0.3

// lookaheadWindow is how far past a plain line the detector looks for more
// boxy lines before closing a block. Captions and annotations inside a
// diagram stay attached this way.
const lookaheadWindow = 3

// Blocks groups classified lines into diagram blocks. A block tolerates a
// single blank separator and a single interior plain line when more boxy
// lines follow within the lookahead window; a second consecutive
// blank/plain line closes it. Trailing non-boxy lines are trimmed.
//
// Every run is returned regardless of confidence; acceptance filtering is
// the caller's policy.
func Blocks(classes []classify.Classification) []Block {
	blocks := make([]Block, 0)

	i := 0
	for i < len(classes) {
		if !classes[i].Kind.Boxy() {
			i++
			continue
		}

		start := i
		end := i + 1
		blankGap := 0
		plainRun := 0

		for end < len(classes) {
			switch classes[end].Kind {
			case classify.KindStrong, classify.KindWeak:
				blankGap = 0
				plainRun = 0
				end++
				continue
			case classify.KindBlank:
				blankGap++
				if blankGap > 1 {
					break
				}
				end++
				continue
			case classify.KindPlain:
				plainRun++
				if plainRun > 1 || blankGap > 0 || !boxyAhead(classes, end+1) {
					break
				}
				end++
				continue
			}
			break
		}

		// A block never ends on a separator.
		for end > start && !classes[end-1].Kind.Boxy() {
			end--
		}

		blocks = append(blocks, Block{
			Start:      start,
			End:        end,
			Confidence: confidence(classes[start:end]),
		})
		i = end
	}

	return blocks
}

// boxyAhead reports whether any of the next lookaheadWindow lines starting
// at idx is boxy.
func boxyAhead(classes []classify.Classification, idx int) bool {
	limit := idx + lookaheadWindow
	for j := idx; j < limit && j < len(classes); j++ {
		if classes[j].Kind.Boxy() {
			return true
		}
	}
	return false
}

// marginConsistencyWeight scales how strongly an inconsistent left margin
// drags a block's confidence down. Diagrams should share one left edge.
const marginConsistencyWeight = 0.5

// confidence scores a block in [0,1]: the fraction of lines carrying a
// recognized right-border glyph, penalized when the left-border columns
// disagree with the block's dominant left margin.
func confidence(classes []classify.Classification) float64 {
	if len(classes) == 0 {
		return 0
	}

	bordered := 0
	leftCounts := make(map[int]int)
	leftTotal := 0
	for _, c := range classes {
		if c.Bordered() {
			bordered++
		}
		if c.LeftCol >= 0 {
			leftCounts[c.LeftCol]++
			leftTotal++
		}
	}

	score := float64(bordered) / float64(len(classes))

	if leftTotal > 0 {
		dominant := 0
		for _, n := range leftCounts {
			if n > dominant {
				dominant = n
			}
		}
		mismatch := float64(leftTotal-dominant) / float64(leftTotal)
		score *= 1 - marginConsistencyWeight*mismatch
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// DominantLeftCol returns the most common left-border column among the
// classified lines, -1 when no line has a left border. The revision scorer
// uses it to penalize edits on lines outside the block's left margin.
func DominantLeftCol(classes []classify.Classification) int {
	counts := make(map[int]int)
	for _, c := range classes {
		if c.LeftCol >= 0 {
			counts[c.LeftCol]++
		}
	}
	best, bestCount := -1, 0
	for col, n := range counts {
		if n > bestCount || (n == bestCount && best >= 0 && col < best) {
			best = col
			bestCount = n
		}
	}
	return best
}

func containsBoxChar(line string) bool {
	for _, r := range line {
		if box.IsBoxChar(r) {
			return true
		}
	}
	return false
}
