package parser

import "strconv"

func parseIntLiteral(text string) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}

func parseFloatLiteral(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
