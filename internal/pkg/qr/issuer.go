package qr

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

const (
	dataURIPrefix = "data:image/png;base64,"
	callbackPath  = "/payment/payment/"
	defaultSize   = 256
)

// Options tunes the rendered image.
type Options struct {
	Size int
}

// Issuer renders payment callback URLs as PNG data URIs.
type Issuer struct {
	baseURL string
	size    int
	level   qrcode.RecoveryLevel
}

// NewIssuer builds Issuer for an absolute base URL such as http://host:3000/api.
func NewIssuer(baseURL string, opts Options) (*Issuer, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}
	size := opts.Size
	if size <= 0 {
		size = defaultSize
	}
	return &Issuer{baseURL: baseURL, size: size, level: qrcode.Medium}, nil
}

// CallbackURL returns the mark-paid URL for the order.
func (i *Issuer) CallbackURL(orderID int64) (string, error) {
	if orderID <= 0 {
		return "", domainErrors.Validationf("order id must be positive, got %d", orderID)
	}
	return i.baseURL + callbackPath + strconv.FormatInt(orderID, 10), nil
}

// Issue encodes the callback URL of the order into a PNG data URI.
// The result depends only on the order id and the issuer settings.
func (i *Issuer) Issue(orderID int64) (string, error) {
	callback, err := i.CallbackURL(orderID)
	if err != nil {
		return "", err
	}
	png, err := qrcode.Encode(callback, i.level, i.size)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// PNG extracts the image bytes from a payload produced by Issue.
func PNG(payload string) ([]byte, error) {
	encoded, ok := strings.CutPrefix(payload, dataURIPrefix)
	if !ok {
		return nil, domainErrors.Validationf("payload is not a png data uri")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, domainErrors.Validationf("payload is not valid base64: %v", err)
	}
	return data, nil
}
