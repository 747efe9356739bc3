package extract

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/docsieve/docsieve/internal/types"
)

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// tfRe matches a font selection operator: /F1 12 Tf
var tfRe = regexp.MustCompile(`/\S+\s+([\d.]+)\s+Tf$`)

// textState tracks the pieces of PDF graphics state the run parser cares
// about: current font size, the text cursor's y position, and the leading
// used by T* line advances.
type textState struct {
	fontSize float64
	y        float64
	hasY     bool
	leading  float64
}

// parseContentStream walks a page content stream line by line and emits
// one TextRun per text-showing operator. Positions come from Tm/Td/TD
// operands; a run emitted before any positioning operator carries no
// position (TopOffset -1) and is degraded downstream.
func parseContentStream(r io.Reader, pageNr int, pageHeight float64) ([]types.TextRun, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var runs []types.TextRun
	st := textState{}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tf")):
			if m := tfRe.FindSubmatch(line); m != nil {
				if size, err := strconv.ParseFloat(string(m[1]), 64); err == nil {
					st.fontSize = size
				}
			}

		case bytes.HasSuffix(line, []byte("Tm")):
			if ops := operands(line, 6); ops != nil {
				st.y = ops[5]
				st.hasY = true
			}

		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if ops := operands(line, 2); ops != nil {
				if st.hasY {
					st.y += ops[1]
				} else {
					st.y = ops[1]
					st.hasY = true
				}
				if bytes.HasSuffix(line, []byte("TD")) && ops[1] < 0 {
					st.leading = -ops[1]
				}
			}

		case bytes.HasSuffix(line, []byte("TL")):
			if ops := operands(line, 1); ops != nil {
				st.leading = ops[0]
			}

		case bytes.Equal(line, []byte("T*")):
			if st.hasY {
				lead := st.leading
				if lead == 0 {
					lead = st.fontSize * 1.2
				}
				st.y -= lead
			}

		case bytes.Equal(line, []byte("BT")):
			st.y, st.hasY = 0, false

		case bytes.HasSuffix(line, []byte("Tj")),
			bytes.HasSuffix(line, []byte("TJ")),
			bytes.HasSuffix(line, []byte("'")):
			text := showText(line)
			if text == "" {
				continue
			}
			runs = append(runs, types.TextRun{
				Text:      text,
				Page:      pageNr,
				FontSize:  st.fontSize,
				TopOffset: topOffset(st, pageHeight),
			})
		}
	}

	return runs, nil
}

// showText concatenates the string literals of one text-showing operator
// into cleaned run text.
func showText(line []byte) string {
	matches := pdfStringRe.FindAllSubmatch(line, -1)
	if matches == nil {
		return ""
	}
	var sb strings.Builder
	for _, m := range matches {
		sb.WriteString(decodePDFString(m[1]))
	}
	return cleanText(sb.String())
}

// topOffset converts the text cursor's y position (PDF user space, origin
// bottom-left) into a top-of-page fraction. -1 when position is unknown.
func topOffset(st textState, pageHeight float64) float64 {
	if !st.hasY || pageHeight <= 0 {
		return -1
	}
	off := 1.0 - st.y/pageHeight
	if off < 0 {
		off = 0
	}
	if off > 1 {
		off = 1
	}
	return off
}

// operands parses the first n numeric operands from an operator line.
// Returns nil when the line doesn't carry n numbers.
func operands(line []byte, n int) []float64 {
	fields := strings.Fields(string(line))
	if len(fields) < n+1 {
		return nil
	}
	ops := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil
		}
		ops[i] = v
	}
	return ops
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '(':
				sb.WriteByte('(')
			case ')':
				sb.WriteByte(')')
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
						i++
						val = val*8 + int(raw[i]-'0')
						if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
							i++
							val = val*8 + int(raw[i]-'0')
						}
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanText normalises whitespace and drops non-printable characters.
func cleanText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
