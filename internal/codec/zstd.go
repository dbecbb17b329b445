package codec

import (
	"bytes"
	"encoding/ascii85"
	"encoding/json"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Envelope field names. The compressed payload is Ascii85-encoded so it can
// be embedded in a JSON string without escaping; this avoids the 33%
// overhead of base64 while remaining printable.
const (
	envelopeVersionKey = "$crimp"
	envelopeDataKey    = "$data"
	envelopeVersion    = 1
)

// Shared encoders/decoder - all are documented as safe for concurrent use.
var (
	fastEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	bestEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// ZstdCodec compresses JSON values into a self-describing envelope document
// using zstd. Aggressive selects the best-compression encoder level; Unsafe
// coerces booleans to 0/1 before encoding, which shortens the token stream
// but makes the round trip lossy.
type ZstdCodec struct{}

// NewZstd creates the default codec.
func NewZstd() *ZstdCodec {
	return &ZstdCodec{}
}

// Optimize compresses value into an envelope document.
func (c *ZstdCodec) Optimize(value any, opts Options) (any, error) {
	if opts.Unsafe {
		value = coerceBools(value)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, optimizeError("value is not JSON-encodable", err)
	}

	encoder := fastEncoder
	if opts.Aggressive {
		encoder = bestEncoder
	}
	compressed := encoder.EncodeAll(data, nil)

	var encoded bytes.Buffer
	a85 := ascii85.NewEncoder(&encoded)
	if _, err := a85.Write(compressed); err != nil {
		return nil, optimizeError("ascii85 encoding failed", err)
	}
	if err := a85.Close(); err != nil {
		return nil, optimizeError("ascii85 encoding failed", err)
	}

	return map[string]any{
		envelopeVersionKey: envelopeVersion,
		envelopeDataKey:    encoded.String(),
	}, nil
}

// Restore decompresses an envelope document back into the original value.
func (c *ZstdCodec) Restore(value any) (any, error) {
	env, ok := value.(map[string]any)
	if !ok {
		return nil, restoreError("not an optimized document (expected an object)", nil)
	}
	if _, ok := env[envelopeVersionKey]; !ok {
		return nil, restoreError("not an optimized document (missing $crimp marker)", nil)
	}
	payload, ok := env[envelopeDataKey].(string)
	if !ok {
		return nil, restoreError("optimized document has no $data payload", nil)
	}

	a85 := ascii85.NewDecoder(bytes.NewReader([]byte(payload)))
	compressed, err := io.ReadAll(a85)
	if err != nil {
		return nil, restoreError("ascii85 decoding failed", err)
	}

	data, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, restoreError("zstd decompression failed", err)
	}

	var restored any
	if err := json.Unmarshal(data, &restored); err != nil {
		return nil, restoreError("decompressed payload is not valid JSON", err)
	}
	return restored, nil
}

// coerceBools walks a decoded JSON value replacing booleans with 0/1.
// Lossy: integers do not restore to booleans.
func coerceBools(value any) any {
	switch v := value.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = coerceBools(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = coerceBools(e)
		}
		return out
	default:
		return value
	}
}
