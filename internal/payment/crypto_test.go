package payment

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"regexp"
	"strings"
	"testing"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		MerchantID: "MS000000001",
		Version:    "2.0",
		NotifyURL:  "https://example.com/payment/notify",
		HashKey:    strings.Repeat("k", 32),
		HashIV:     strings.Repeat("v", 16),
	}
}

func TestNewTradeCryptoKeyLength(t *testing.T) {
	cfg := testPaymentConfig()
	cfg.HashKey = "too-short"
	_, err := NewTradeCrypto(cfg)
	assert.Error(t, err)

	cfg = testPaymentConfig()
	cfg.HashIV = "short"
	_, err = NewTradeCrypto(cfg)
	assert.Error(t, err)
}

func TestEncryptProducesVerifiableEnvelope(t *testing.T) {
	crypto, err := NewTradeCrypto(testPaymentConfig())
	require.NoError(t, err)

	order := &Order{
		Money:           1200,
		MerchantOrderNo: "1700000000000",
		TimeStamp:       1700000000,
	}

	tradeInfo, tradeSha, err := crypto.Encrypt(order)
	require.NoError(t, err)

	// TradeInfo 为整块对齐的 hex 密文
	raw, err := hex.DecodeString(tradeInfo)
	require.NoError(t, err)
	assert.Zero(t, len(raw)%aes.BlockSize)

	// TradeSha 为大写 SHA256 hex，且可由 TradeInfo 重算
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{64}$`), tradeSha)
	assert.Equal(t, tradeSha, crypto.Sha(tradeInfo))
}

func TestEncryptDataChainContents(t *testing.T) {
	crypto, err := NewTradeCrypto(testPaymentConfig())
	require.NoError(t, err)

	order := &Order{
		Money:           1200,
		MerchantOrderNo: "1700000000000",
		TimeStamp:       1700000000,
	}

	tradeInfo, _, err := crypto.Encrypt(order)
	require.NoError(t, err)

	plain := decryptHex(t, crypto, tradeInfo)
	assert.Contains(t, plain, "MerchantID=MS000000001")
	assert.Contains(t, plain, "MerchantOrderNo=1700000000000")
	assert.Contains(t, plain, "Amt=1200")
	assert.Contains(t, plain, "ItemDesc=公益募捐")
}

func TestDecryptNotifyRoundTrip(t *testing.T) {
	crypto, err := NewTradeCrypto(testPaymentConfig())
	require.NoError(t, err)

	body := `{"Status":"SUCCESS","Message":"付款成功",` +
		`"Result":{"MerchantOrderNo":"1700000000000","TradeNo":"23120112345","Amt":1200,"PayTime":"2023-12-01 12:00:00"}}`
	tradeInfo := encryptHex(t, crypto, body)

	payload, err := crypto.DecryptNotify(tradeInfo)
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", payload.Status)
	assert.Equal(t, "1700000000000", payload.Result.MerchantOrderNo)
	assert.Equal(t, "23120112345", payload.Result.TradeNo)
	assert.EqualValues(t, 1200, payload.Result.Amt)
}

func TestDecryptNotifyRejectsGarbage(t *testing.T) {
	crypto, err := NewTradeCrypto(testPaymentConfig())
	require.NoError(t, err)

	_, err = crypto.DecryptNotify("not-hex")
	assert.Error(t, err)

	_, err = crypto.DecryptNotify("abcd")
	assert.Error(t, err)

	// 合法密文但内容不是 JSON
	_, err = crypto.DecryptNotify(encryptHex(t, crypto, "not json at all"))
	assert.Error(t, err)
}

func encryptHex(t *testing.T, crypto *TradeCrypto, plain string) string {
	t.Helper()
	block, err := aes.NewCipher(crypto.key)
	require.NoError(t, err)

	padded := pkcs7Pad([]byte(plain), aes.BlockSize)
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, crypto.iv).CryptBlocks(encrypted, padded)
	return hex.EncodeToString(encrypted)
}

func decryptHex(t *testing.T, crypto *TradeCrypto, tradeInfo string) string {
	t.Helper()
	raw, err := hex.DecodeString(tradeInfo)
	require.NoError(t, err)

	block, err := aes.NewCipher(crypto.key)
	require.NoError(t, err)

	plain := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, crypto.iv).CryptBlocks(plain, raw)
	return string(plain)
}
