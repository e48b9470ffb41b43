package archive

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/kailas-cloud/tenantdex/internal/domain/upload"
)

// Record format version, stored as the first byte of every value.
const recordVersion byte = 1

var (
	encMode cbor.EncMode
	decMode cbor.DecMode

	// zstd.Encoder and zstd.Decoder are safe for concurrent use.
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("archive: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("archive: CBOR decoder initialization failed: " + err.Error())
	}
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("archive: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("archive: zstd decoder initialization failed: " + err.Error())
	}
}

// encode serializes an upload as version byte + zstd(CBOR).
func encode(u upload.Upload) ([]byte, error) {
	raw, err := encMode.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("cbor marshal: %w", err)
	}
	out := make([]byte, 1, 1+len(raw)/2)
	out[0] = recordVersion
	return zstdEncoder.EncodeAll(raw, out), nil
}

func decode(data []byte) (upload.Upload, error) {
	if len(data) == 0 {
		return upload.Upload{}, fmt.Errorf("empty record")
	}
	if data[0] != recordVersion {
		return upload.Upload{}, fmt.Errorf("unsupported record version %d", data[0])
	}
	raw, err := zstdDecoder.DecodeAll(data[1:], nil)
	if err != nil {
		return upload.Upload{}, fmt.Errorf("zstd decompress: %w", err)
	}
	var u upload.Upload
	if err := decMode.Unmarshal(raw, &u); err != nil {
		return upload.Upload{}, fmt.Errorf("cbor unmarshal: %w", err)
	}
	return u, nil
}
