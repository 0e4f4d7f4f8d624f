package services

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/rupiksha/go-ppob-transaction/internal/models"
)

// ErrorTranslatorService maps gateway short-codes and transport errors onto
// the closed ErrorKind taxonomy. Unmapped codes become ErrorKindUnknown with
// the raw message preserved verbatim, never dropped.
type ErrorTranslatorService interface {
	TranslateCode(code, rawMessage string) models.Failure
	TranslateTransportError(err error) models.Failure
	Table() models.GatewayCodeTable
}

type errorTranslator struct {
	table models.GatewayCodeTable
}

func NewErrorTranslator(table models.GatewayCodeTable) ErrorTranslatorService {
	if table.Codes == nil {
		table = models.DefaultGatewayCodeTable()
	}
	return &errorTranslator{table: table}
}

func (t *errorTranslator) Table() models.GatewayCodeTable {
	return t.table
}

// TranslateCode resolves a failure from an explicit short-code, falling back
// to scanning the message for an embedded code. The gateways are not
// consistent about which field carries the code.
func (t *errorTranslator) TranslateCode(code, rawMessage string) models.Failure {
	code = strings.ToUpper(strings.TrimSpace(code))

	if entry, ok := t.table.Codes[code]; ok {
		return models.Failure{
			Kind:         entry.Kind,
			ProviderCode: code,
			Message:      entry.Message,
		}
	}

	if code == "" {
		upperMsg := strings.ToUpper(rawMessage)
		for candidate, entry := range t.table.Codes {
			if strings.Contains(upperMsg, candidate) {
				return models.Failure{
					Kind:         entry.Kind,
					ProviderCode: candidate,
					Message:      entry.Message,
				}
			}
		}
	}

	message := rawMessage
	if message == "" {
		message = "unrecognized gateway error"
		if code != "" {
			message = "unrecognized gateway error code " + code
		}
	}

	return models.Failure{
		Kind:         models.ErrorKindUnknown,
		ProviderCode: code,
		Message:      message,
	}
}

func (t *errorTranslator) TranslateTransportError(err error) models.Failure {
	if err == nil {
		return models.Failure{Kind: models.ErrorKindUnknown, Message: "unknown transport failure"}
	}

	var netErr net.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())

	if timedOut {
		return models.Failure{
			Kind:    models.ErrorKindTimeout,
			Message: "Request Timed Out",
		}
	}

	return models.Failure{
		Kind:    models.ErrorKindUnknown,
		Message: err.Error(),
	}
}
