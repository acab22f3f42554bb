package qr

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered PNG edge length in pixels.
const DefaultSize = 256

// QuizURL builds the frontend launch URL encoded into a quiz QR code.
func QuizURL(baseURL string, quizID uint, courseNumber string) string {
	target := fmt.Sprintf("%s/quiz?quizId=%d", baseURL, quizID)
	if courseNumber != "" {
		target += "&courseNumber=" + url.QueryEscape(courseNumber)
	}
	return target
}

// QuizPNG renders the launch URL as a PNG QR code.
func QuizPNG(baseURL string, quizID uint, courseNumber string) ([]byte, error) {
	png, err := qrcode.Encode(QuizURL(baseURL, quizID, courseNumber), qrcode.Medium, DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
