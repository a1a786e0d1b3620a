// Package discount 计算结算折扣。
//
// 规则按加法累计后再封顶：
//   - 订单金额超过 1,000,000 折扣 10 个百分点
//   - 会员再加 5 个百分点
//   - 促销码 DISKON20（区分大小写）再加 20 个百分点
//
// 累计折扣最多 50%。
package discount

const (
	LargeTotalThreshold = 1_000_000
	LargeTotalPercent   = 10
	MemberPercent       = 5
	PromoCode           = "DISKON20"
	PromoPercent        = 20
	MaxPercent          = 50
)

// Percent 返回适用的折扣百分比（已封顶）
func Percent(total float64, isMember bool, promoCode string) float64 {
	var pct float64
	if total > LargeTotalThreshold {
		pct += LargeTotalPercent
	}
	if isMember {
		pct += MemberPercent
	}
	if promoCode == PromoCode {
		pct += PromoPercent
	}
	return Cap(pct)
}

// Cap 将累计折扣限制在 MaxPercent 以内
func Cap(pct float64) float64 {
	if pct > MaxPercent {
		return MaxPercent
	}
	return pct
}

// Apply 按百分比计算折后金额
func Apply(total, pct float64) float64 {
	return total - total*pct/100
}

// FinalAmount 计算折后应付金额，不做入参校验，负数金额由调用方保证不会出现
func FinalAmount(total float64, isMember bool, promoCode string) float64 {
	return Apply(total, Percent(total, isMember, promoCode))
}
