package migrate

import (
	stripeapi "github.com/stripe/stripe-go/v81"
)

// FetchPlans returns every plan in the account, in listing order.
func (m *Migrator) FetchPlans(api API) ([]*stripeapi.Plan, error) {
	return fetchAll(m.Log, "plans", func(p *stripeapi.Plan) string { return p.ID }, api.Plans)
}

// planTierParams maps a pricing tier. An unset up_to marks the unlimited
// tier, which the creation endpoint only accepts as the literal "inf".
func planTierParams(tier *stripeapi.PlanTier) *stripeapi.PlanTierParams {
	params := &stripeapi.PlanTierParams{}
	if tier.UpTo != 0 {
		params.UpTo = stripeapi.Int64(tier.UpTo)
	} else {
		params.UpToInf = stripeapi.Bool(true)
	}
	if tier.FlatAmount != 0 {
		params.FlatAmount = stripeapi.Int64(tier.FlatAmount)
	}
	if tier.FlatAmountDecimal != 0 {
		params.FlatAmountDecimal = stripeapi.Float64(tier.FlatAmountDecimal)
	}
	if tier.UnitAmount != 0 {
		params.UnitAmount = stripeapi.Int64(tier.UnitAmount)
	}
	if tier.UnitAmountDecimal != 0 {
		params.UnitAmountDecimal = stripeapi.Float64(tier.UnitAmountDecimal)
	}
	return params
}

// planParams maps a plan into its creation request. The product reference
// may arrive expanded or as a bare ID and is always sent as the ID.
func planParams(plan *stripeapi.Plan) *stripeapi.PlanParams {
	params := &stripeapi.PlanParams{
		ID:            stripeapi.String(plan.ID),
		Currency:      stripeapi.String(string(plan.Currency)),
		Interval:      stripeapi.String(string(plan.Interval)),
		IntervalCount: stripeapi.Int64(plan.IntervalCount),
		BillingScheme: stripeapi.String(string(plan.BillingScheme)),
		UsageType:     stripeapi.String(string(plan.UsageType)),
	}
	params.Metadata = plan.Metadata
	if plan.Product != nil {
		params.ProductID = stripeapi.String(plan.Product.ID)
	}
	if plan.AggregateUsage != "" {
		params.AggregateUsage = stripeapi.String(string(plan.AggregateUsage))
	}
	if plan.Amount != 0 {
		params.Amount = stripeapi.Int64(plan.Amount)
	}
	if plan.AmountDecimal != 0 {
		params.AmountDecimal = stripeapi.Float64(plan.AmountDecimal)
	}
	if plan.Nickname != "" {
		params.Nickname = stripeapi.String(plan.Nickname)
	}
	for _, tier := range plan.Tiers {
		params.Tiers = append(params.Tiers, planTierParams(tier))
	}
	if plan.TiersMode != "" {
		params.TiersMode = stripeapi.String(string(plan.TiersMode))
	}
	if plan.TransformUsage != nil {
		params.TransformUsage = &stripeapi.PlanTransformUsageParams{
			DivideBy: stripeapi.Int64(plan.TransformUsage.DivideBy),
			Round:    stripeapi.String(string(plan.TransformUsage.Round)),
		}
	}
	if plan.TrialPeriodDays != 0 {
		params.TrialPeriodDays = stripeapi.Int64(plan.TrialPeriodDays)
	}
	return params
}

// Plans copies every active plan from the source account to the
// destination, skipping plans that already exist there. The returned slice
// holds the created plans in source order, with a nil entry per skip.
func (m *Migrator) Plans() ([]*stripeapi.Plan, error) {
	plans, err := m.FetchPlans(m.From)
	if err != nil {
		return nil, err
	}
	var active []*stripeapi.Plan
	for _, plan := range plans {
		if plan.Active {
			active = append(active, plan)
		}
	}
	return createAll(m.Log, "plan", true, active,
		func(p *stripeapi.Plan) string { return p.ID },
		func(p *stripeapi.Plan) (*stripeapi.Plan, error) {
			created, err := m.To.CreatePlan(planParams(p))
			if err != nil {
				return nil, err
			}
			m.Log.Infof("created plan %s (%s)", created.Nickname, created.ID)
			return created, nil
		})
}
