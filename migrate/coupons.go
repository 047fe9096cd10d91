package migrate

import (
	"time"

	stripeapi "github.com/stripe/stripe-go/v81"
)

// FetchCoupons returns every coupon in the account, in listing order.
func (m *Migrator) FetchCoupons(api API) ([]*stripeapi.Coupon, error) {
	return fetchAll(m.Log, "coupons", func(c *stripeapi.Coupon) string { return c.ID }, api.Coupons)
}

// couponParams maps a coupon into its creation request. The source ID is
// reused so that redemptions keep working across accounts. Unset optional
// fields are omitted rather than sent as zero values.
func couponParams(coupon *stripeapi.Coupon) *stripeapi.CouponParams {
	params := &stripeapi.CouponParams{
		ID:       stripeapi.String(coupon.ID),
		Duration: stripeapi.String(string(coupon.Duration)),
	}
	params.Metadata = coupon.Metadata
	if coupon.AmountOff != 0 {
		params.AmountOff = stripeapi.Int64(coupon.AmountOff)
	}
	if coupon.Currency != "" {
		params.Currency = stripeapi.String(string(coupon.Currency))
	}
	if coupon.DurationInMonths != 0 {
		params.DurationInMonths = stripeapi.Int64(coupon.DurationInMonths)
	}
	if coupon.MaxRedemptions != 0 {
		params.MaxRedemptions = stripeapi.Int64(coupon.MaxRedemptions)
	}
	if coupon.Name != "" {
		params.Name = stripeapi.String(coupon.Name)
	}
	if coupon.PercentOff != 0 {
		params.PercentOff = stripeapi.Float64(coupon.PercentOff)
	}
	if coupon.RedeemBy != 0 {
		params.RedeemBy = stripeapi.Int64(coupon.RedeemBy)
	}
	return params
}

// Coupons copies every still-redeemable coupon from the source account to
// the destination. Expired coupons are filtered out; coupons that already
// exist on the destination are skipped. The returned slice holds the created
// coupons in source order, with a nil entry per skipped coupon.
func (m *Migrator) Coupons() ([]*stripeapi.Coupon, error) {
	coupons, err := m.FetchCoupons(m.From)
	if err != nil {
		return nil, err
	}
	now := time.Now().Unix()
	var redeemable []*stripeapi.Coupon
	for _, coupon := range coupons {
		if coupon.RedeemBy != 0 && coupon.RedeemBy <= now {
			continue
		}
		redeemable = append(redeemable, coupon)
	}
	return createAll(m.Log, "coupon", true, redeemable,
		func(c *stripeapi.Coupon) string { return c.ID },
		func(c *stripeapi.Coupon) (*stripeapi.Coupon, error) {
			created, err := m.To.CreateCoupon(couponParams(c))
			if err != nil {
				return nil, err
			}
			m.Log.Infof("created coupon %s (%s)", created.Name, created.ID)
			return created, nil
		})
}
