package normalizer

import (
	"strings"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// Payment method classification. Platform method strings are freeform, so
// classification is substring based and falls back to a conservative default.

// paymentClass describes one recognized payment instrument
type paymentClass struct {
	keywords       []string
	category       string
	provider       string
	supportsRefund bool
	riskLevel      string
}

var paymentClasses = []paymentClass{
	{keywords: []string{"cod", "cash on delivery", "thanh toán khi nhận"}, category: "COD", provider: "", supportsRefund: false, riskLevel: "HIGH"},
	{keywords: []string{"shopeepay", "airpay"}, category: "E_WALLET", provider: "ShopeePay", supportsRefund: true, riskLevel: "LOW"},
	{keywords: []string{"momo"}, category: "E_WALLET", provider: "MoMo", supportsRefund: true, riskLevel: "LOW"},
	{keywords: []string{"zalopay"}, category: "E_WALLET", provider: "ZaloPay", supportsRefund: true, riskLevel: "LOW"},
	{keywords: []string{"vnpay"}, category: "E_WALLET", provider: "VNPay", supportsRefund: true, riskLevel: "LOW"},
	{keywords: []string{"spaylater", "pay later", "installment", "trả góp"}, category: "PAY_LATER", provider: "", supportsRefund: true, riskLevel: "MEDIUM"},
	{keywords: []string{"credit", "visa", "master", "jcb", "card"}, category: "CARD", provider: "", supportsRefund: true, riskLevel: "LOW"},
	{keywords: []string{"bank", "transfer", "chuyển khoản"}, category: "BANK_TRANSFER", provider: "", supportsRefund: true, riskLevel: "MEDIUM"},
}

// ClassifyPayment builds the PaymentInfo row. The isCOD flag reported by the
// platform wins over string matching because some platforms report a blank
// method for COD orders.
func ClassifyPayment(orderID, method string, isCOD bool) *canonical.PaymentInfo {
	info := &canonical.PaymentInfo{
		OrderID:         orderID,
		PaymentMethod:   method,
		PaymentCategory: "UNKNOWN",
		PaymentProvider: "",
		IsCOD:           isCOD,
		SupportsRefund:  false,
		RiskLevel:       "MEDIUM",
	}

	lower := strings.ToLower(method)
	for _, c := range paymentClasses {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				info.PaymentCategory = c.category
				info.PaymentProvider = c.provider
				info.SupportsRefund = c.supportsRefund
				info.RiskLevel = c.riskLevel
				if c.category == "COD" {
					info.IsCOD = true
				}
				return info
			}
		}
	}

	if isCOD {
		info.PaymentCategory = "COD"
		info.SupportsRefund = false
		info.RiskLevel = "HIGH"
	}
	return info
}
