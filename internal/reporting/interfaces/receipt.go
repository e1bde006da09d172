package interfaces

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rdalreport/internal/reporting/application"
)

// BuildReceipt signs a run receipt over the artifact digest with HS256.
// The receipt accompanies the submission so downstream consumers can verify
// the artifact they received is the one this run produced.
func BuildReceipt(secret []byte, artifact []byte, date application.ReportDate, sections map[string]int, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("receipt: empty signing secret")
	}
	digest := sha256.Sum256(artifact)

	claims := jwt.MapClaims{
		"artifact_sha256": hex.EncodeToString(digest[:]),
		"reporting_day":   date.Day,
		"reporting_month": date.Month,
		"reporting_year":  date.Year,
		"sections":        sections,
		"iat":             now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyReceipt checks a receipt signature and that it matches the artifact.
func VerifyReceipt(secret []byte, receipt string, artifact []byte) error {
	token, err := jwt.Parse(receipt, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("receipt: unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("receipt: unexpected claims")
	}
	digest := sha256.Sum256(artifact)
	if claims["artifact_sha256"] != hex.EncodeToString(digest[:]) {
		return errors.New("receipt: artifact digest mismatch")
	}
	return nil
}
