package doctors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type directoryEnvelope[T any] struct {
	Data T `json:"data"`
}

type doctorDirectoryClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewDoctorDirectoryClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.DoctorDirectoryClient {
	return &doctorDirectoryClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/") + "/api/" + constvars.ResourceDoctors,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

func (c *doctorDirectoryClient) FetchVerified(ctx context.Context, credential string) ([]models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("doctorDirectoryClient.FetchVerified called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var envelope directoryEnvelope[[]models.Doctor]
	if err := c.get(ctx, c.BaseUrl+"/verified", credential, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		envelope.Data = []models.Doctor{}
	}

	c.Log.Info("doctorDirectoryClient.FetchVerified succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(envelope.Data)),
	)
	return envelope.Data, nil
}

func (c *doctorDirectoryClient) FetchByID(ctx context.Context, credential, doctorID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("doctorDirectoryClient.FetchByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var envelope directoryEnvelope[*models.Doctor]
	err := c.get(ctx, c.BaseUrl+"/"+url.PathEscape(doctorID), credential, &envelope)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindNotFound) {
			return nil, exceptions.ErrDoctorNotFound(err, doctorID)
		}
		return nil, err
	}
	if envelope.Data == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, doctorID)
	}

	c.Log.Info("doctorDirectoryClient.FetchByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return envelope.Data, nil
}

func (c *doctorDirectoryClient) get(ctx context.Context, target, credential string, out any) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, target, nil)
	if err != nil {
		c.Log.Error("doctorDirectoryClient.get error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if credential != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+credential)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("doctorDirectoryClient.get error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRemoteURLKey, target),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.Log.Error("doctorDirectoryClient.get unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRemoteURLKey, target),
			zap.Int(constvars.LoggingRemoteStatusKey, resp.StatusCode),
			zap.ByteString(constvars.LoggingResponseKey, body),
		)
		remoteErr := fmt.Errorf("%s", strings.TrimSpace(string(body)))
		switch resp.StatusCode {
		case constvars.StatusNotFound:
			return exceptions.BuildNewCustomError(remoteErr, constvars.StatusNotFound, constvars.ErrClientDoctorNotFound,
				fmt.Sprintf(constvars.ErrDevUnexpectedRemoteStatus, resp.StatusCode, target))
		case constvars.StatusUnauthorized:
			return exceptions.ErrTokenInvalid(remoteErr)
		default:
			return exceptions.ErrDirectoryRemoteStatus(remoteErr, resp.StatusCode, target)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.Log.Error("doctorDirectoryClient.get error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrDecodeResponse(err, target)
	}
	return nil
}
