package payment

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/config"
)

// Order 待付款订单，建立订单与付款回调之间的凭据
type Order struct {
	UserId          int64  `json:"userId"`
	ProjectId       int64  `json:"projectId"`
	Money           int64  `json:"money"`
	UserName        string `json:"userName"`
	Phone           string `json:"phone"`
	Receiver        string `json:"receiver"`
	ReceiverPhone   string `json:"receiverPhone"`
	Address         string `json:"address"`
	IsNeedFeedback  bool   `json:"isNeedFeedback"`
	MerchantOrderNo string `json:"MerchantOrderNo"`
	TimeStamp       int64  `json:"TimeStamp"`
}

// NotifyPayload 金流回调解密后的内容
type NotifyPayload struct {
	Status  string       `json:"Status"`
	Message string       `json:"Message"`
	Result  NotifyResult `json:"Result"`
}

type NotifyResult struct {
	MerchantOrderNo string `json:"MerchantOrderNo"`
	TradeNo         string `json:"TradeNo"`
	Amt             int64  `json:"Amt"`
	PayTime         string `json:"PayTime"`
}

// TradeCrypto 金流供应商的交易加密信封（AES-256-CBC + SHA256 校验）
type TradeCrypto struct {
	merchantID string
	version    string
	notifyURL  string
	key        []byte
	iv         []byte
}

// NewTradeCrypto 创建交易加密器
func NewTradeCrypto(cfg config.PaymentConfig) (*TradeCrypto, error) {
	key := []byte(cfg.HashKey)
	iv := []byte(cfg.HashIV)
	if len(key) != 32 {
		return nil, fmt.Errorf("payment hash key must be 32 bytes, got %d", len(key))
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("payment hash iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}
	return &TradeCrypto{
		merchantID: cfg.MerchantID,
		version:    cfg.Version,
		notifyURL:  cfg.NotifyURL,
		key:        key,
		iv:         iv,
	}, nil
}

// MerchantID 商店代号，随加密资料一并回传前端
func (t *TradeCrypto) MerchantID() string {
	return t.merchantID
}

// Version 串接程式版本
func (t *TradeCrypto) Version() string {
	return t.version
}

// dataChain 供应商要求的 key=value 串接格式
func (t *TradeCrypto) dataChain(order *Order) string {
	pairs := []string{
		"RespondType=JSON",
		"MerchantID=" + t.merchantID,
		fmt.Sprintf("TimeStamp=%d", order.TimeStamp),
		"Version=" + t.version,
		"MerchantOrderNo=" + order.MerchantOrderNo,
		fmt.Sprintf("Amt=%d", order.Money),
		"ItemDesc=公益募捐",
		"NotifyURL=" + t.notifyURL,
	}
	return strings.Join(pairs, "&")
}

// Encrypt 产生 TradeInfo（AES hex）与 TradeSha（SHA256 大写 hex）
func (t *TradeCrypto) Encrypt(order *Order) (string, string, error) {
	block, err := aes.NewCipher(t.key)
	if err != nil {
		return "", "", err
	}

	plain := pkcs7Pad([]byte(t.dataChain(order)), aes.BlockSize)
	encrypted := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, t.iv).CryptBlocks(encrypted, plain)

	tradeInfo := hex.EncodeToString(encrypted)
	return tradeInfo, t.Sha(tradeInfo), nil
}

// Sha TradeInfo 的校验值：SHA256("HashKey=K&<aes>&HashIV=IV") 大写
func (t *TradeCrypto) Sha(tradeInfo string) string {
	plain := fmt.Sprintf("HashKey=%s&%s&HashIV=%s", t.key, tradeInfo, t.iv)
	sum := sha256.Sum256([]byte(plain))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// DecryptNotify 解密回调的 TradeInfo 并解析 JSON
//
// 供应商填充以控制字符收尾，解密后整体剔除 0x00-0x20（沿用对接行为）
func (t *TradeCrypto) DecryptNotify(tradeInfo string) (*NotifyPayload, error) {
	raw, err := hex.DecodeString(tradeInfo)
	if err != nil {
		return nil, fmt.Errorf("invalid trade info encoding: %w", err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("invalid trade info length %d", len(raw))
	}

	block, err := aes.NewCipher(t.key)
	if err != nil {
		return nil, err
	}

	plain := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, t.iv).CryptBlocks(plain, raw)

	cleaned := make([]byte, 0, len(plain))
	for _, b := range plain {
		if b > 0x20 {
			cleaned = append(cleaned, b)
		}
	}

	var payload NotifyPayload
	if err := json.Unmarshal(cleaned, &payload); err != nil {
		return nil, fmt.Errorf("invalid trade info payload: %w", err)
	}
	return &payload, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}
