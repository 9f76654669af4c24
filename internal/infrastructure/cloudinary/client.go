// Package cloudinary implementa el puerto ImagenStorage contra la API REST de
// Cloudinary. Usa net/http de la librería estándar; no requiere el SDK oficial.
// Las subidas van firmadas (SHA-1 de los parámetros + api_secret), de modo que
// el api_secret nunca sale del backend.
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abastos/inventario-api/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa ImagenStorage.
var _ ports.ImagenStorage = (*Client)(nil)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// Client adaptador HTTP de Cloudinary.
type Client struct {
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	httpClient *http.Client
}

// NewClient construye el adaptador. folder es el directorio destino en
// Cloudinary (ej. "inventario").
func NewClient(cloudName, apiKey, apiSecret, folder string) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sube la imagen firmada y devuelve la URL segura y el public_id.
func (c *Client) Upload(ctx context.Context, filename string, contenido io.Reader) (string, string, error) {
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return "", "", fmt.Errorf("cloudinary: credenciales no configuradas")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{"timestamp": timestamp}
	if c.folder != "" {
		params["folder"] = c.folder
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return "", "", fmt.Errorf("cloudinary: escribir campo: %w", err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return "", "", fmt.Errorf("cloudinary: escribir campo: %w", err)
	}
	if err := writer.WriteField("signature", c.sign(params)); err != nil {
		return "", "", fmt.Errorf("cloudinary: escribir campo: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", "", fmt.Errorf("cloudinary: crear parte de archivo: %w", err)
	}
	if _, err := io.Copy(part, contenido); err != nil {
		return "", "", fmt.Errorf("cloudinary: copiar archivo: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", "", fmt.Errorf("cloudinary: cerrar multipart: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	out, err := c.post(ctx, url, writer.FormDataContentType(), strings.NewReader(body.String()))
	if err != nil {
		return "", "", err
	}
	return out.SecureURL, out.PublicID, nil
}

// Delete elimina una imagen por su public_id. Cloudinary responde "not found"
// sin error HTTP para IDs inexistentes, lo que mantiene la operación idempotente.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return fmt.Errorf("cloudinary: credenciales no configuradas")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := make([]string, 0, len(params)+2)
	for k, v := range params {
		form = append(form, k+"="+v)
	}
	form = append(form, "api_key="+c.apiKey, "signature="+c.sign(params))

	url := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	_, err := c.post(ctx, url, "application/x-www-form-urlencoded", strings.NewReader(strings.Join(form, "&")))
	return err
}

func (c *Client) post(ctx context.Context, url, contentType string, body io.Reader) (*uploadResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("cloudinary: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("cloudinary: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("cloudinary: leer respuesta: %w", err)
	}

	var out uploadResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("cloudinary: deserializar respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("cloudinary: %s", out.Error.Message)
		}
		return nil, fmt.Errorf("cloudinary: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	return &out, nil
}

// sign calcula la firma SHA-1 de los parámetros ordenados alfabéticamente
// concatenados con el api_secret, según el esquema de firmas de Cloudinary.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
