package migrate

import (
	stripeapi "github.com/stripe/stripe-go/v81"
)

// subscriptionParams maps a source subscription into the creation request
// for the destination account. Relational fields are sent as bare IDs, unset
// optional fields are omitted, and the trial end is pinned to the source's
// current period end so the recreated subscription does not bill before the
// original period would have ended.
func subscriptionParams(
	subscription *stripeapi.Subscription,
	customerID, paymentMethodID string,
	dryRun bool,
) *stripeapi.SubscriptionParams {
	params := &stripeapi.SubscriptionParams{
		Customer:             stripeapi.String(customerID),
		DefaultPaymentMethod: stripeapi.String(paymentMethodID),
		TrialEnd:             stripeapi.Int64(subscription.CurrentPeriodEnd),
		CancelAtPeriodEnd:    stripeapi.Bool(subscription.CancelAtPeriodEnd),
	}
	params.Metadata = subscription.Metadata
	// cancel_at conflicts with cancel_at_period_end on the create call.
	if !subscription.CancelAtPeriodEnd && subscription.CancelAt != 0 {
		params.CancelAt = stripeapi.Int64(subscription.CancelAt)
	}
	if subscription.ApplicationFeePercent != 0 {
		params.ApplicationFeePercent = stripeapi.Float64(subscription.ApplicationFeePercent)
	}
	if subscription.BillingThresholds != nil {
		params.BillingThresholds = &stripeapi.SubscriptionBillingThresholdsParams{
			AmountGTE:               stripeapi.Int64(subscription.BillingThresholds.AmountGTE),
			ResetBillingCycleAnchor: stripeapi.Bool(subscription.BillingThresholds.ResetBillingCycleAnchor),
		}
	}
	if subscription.DaysUntilDue != 0 {
		params.DaysUntilDue = stripeapi.Int64(subscription.DaysUntilDue)
	}
	if subscription.Description != "" {
		params.Description = stripeapi.String(subscription.Description)
	}
	if subscription.DefaultSource != nil {
		params.DefaultSource = stripeapi.String(subscription.DefaultSource.ID)
	}
	for _, taxRate := range subscription.DefaultTaxRates {
		params.DefaultTaxRates = append(params.DefaultTaxRates, stripeapi.String(taxRate.ID))
	}
	if subscription.OnBehalfOf != nil {
		params.OnBehalfOf = stripeapi.String(subscription.OnBehalfOf.ID)
	}
	if subscription.TransferData != nil {
		transfer := &stripeapi.SubscriptionTransferDataParams{}
		if subscription.TransferData.Destination != nil {
			transfer.Destination = stripeapi.String(subscription.TransferData.Destination.ID)
		}
		if subscription.TransferData.AmountPercent != 0 {
			transfer.AmountPercent = stripeapi.Float64(subscription.TransferData.AmountPercent)
		}
		params.TransferData = transfer
	}
	if subscription.Items != nil {
		for _, item := range subscription.Items.Data {
			params.Items = append(params.Items, subscriptionItemParams(item))
		}
	}
	// A discount carrying a coupon wins; a promotion code is only sent when
	// no coupon is attached. The two are mutually exclusive on creation.
	if discount := subscription.Discount; discount != nil {
		switch {
		case discount.Coupon != nil:
			params.Coupon = stripeapi.String(discount.Coupon.ID)
		case discount.PromotionCode != nil:
			params.PromotionCode = stripeapi.String(discount.PromotionCode.ID)
		}
	}
	if subscription.PaymentSettings != nil {
		params.PaymentSettings = paymentSettingsParams(subscription.PaymentSettings)
	}
	if subscription.PendingInvoiceItemInterval != nil {
		params.PendingInvoiceItemInterval = &stripeapi.SubscriptionPendingInvoiceItemIntervalParams{
			Interval:      stripeapi.String(string(subscription.PendingInvoiceItemInterval.Interval)),
			IntervalCount: stripeapi.Int64(subscription.PendingInvoiceItemInterval.IntervalCount),
		}
	}
	if subscription.TrialSettings != nil && subscription.TrialSettings.EndBehavior != nil {
		params.TrialSettings = &stripeapi.SubscriptionTrialSettingsParams{
			EndBehavior: &stripeapi.SubscriptionTrialSettingsEndBehaviorParams{
				MissingPaymentMethod: stripeapi.String(string(subscription.TrialSettings.EndBehavior.MissingPaymentMethod)),
			},
		}
	}
	// Mock customers have no real tax jurisdiction, so dry runs never carry
	// the automatic tax configuration over.
	if !dryRun && subscription.AutomaticTax != nil {
		tax := &stripeapi.SubscriptionAutomaticTaxParams{
			Enabled: stripeapi.Bool(subscription.AutomaticTax.Enabled),
		}
		if liability := subscription.AutomaticTax.Liability; liability != nil {
			liabilityParams := &stripeapi.SubscriptionAutomaticTaxLiabilityParams{
				Type: stripeapi.String(string(liability.Type)),
			}
			if liability.Account != nil {
				liabilityParams.Account = stripeapi.String(liability.Account.ID)
			}
			tax.Liability = liabilityParams
		}
		params.AutomaticTax = tax
	}
	return params
}

// subscriptionItemParams maps one subscription item, resolving the price and
// tax rate references to bare IDs.
func subscriptionItemParams(item *stripeapi.SubscriptionItem) *stripeapi.SubscriptionItemsParams {
	params := &stripeapi.SubscriptionItemsParams{}
	if item.Price != nil {
		params.Price = stripeapi.String(item.Price.ID)
	}
	if item.Quantity != 0 {
		params.Quantity = stripeapi.Int64(item.Quantity)
	}
	for _, taxRate := range item.TaxRates {
		params.TaxRates = append(params.TaxRates, stripeapi.String(taxRate.ID))
	}
	if item.BillingThresholds != nil {
		params.BillingThresholds = &stripeapi.SubscriptionItemBillingThresholdsParams{
			UsageGTE: stripeapi.Int64(item.BillingThresholds.UsageGTE),
		}
	}
	params.Metadata = item.Metadata
	return params
}

// paymentSettingsParams copies the payment settings tree field for field,
// omitting every unset branch.
func paymentSettingsParams(settings *stripeapi.SubscriptionPaymentSettings) *stripeapi.SubscriptionPaymentSettingsParams {
	params := &stripeapi.SubscriptionPaymentSettingsParams{}
	if settings.PaymentMethodOptions != nil {
		params.PaymentMethodOptions = paymentMethodOptionsParams(settings.PaymentMethodOptions)
	}
	for _, methodType := range settings.PaymentMethodTypes {
		params.PaymentMethodTypes = append(params.PaymentMethodTypes, stripeapi.String(string(methodType)))
	}
	if settings.SaveDefaultPaymentMethod != "" {
		params.SaveDefaultPaymentMethod = stripeapi.String(string(settings.SaveDefaultPaymentMethod))
	}
	return params
}

func paymentMethodOptionsParams(
	options *stripeapi.SubscriptionPaymentSettingsPaymentMethodOptions,
) *stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsParams {
	params := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsParams{}
	if acss := options.ACSSDebit; acss != nil {
		acssParams := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsACSSDebitParams{}
		if acss.MandateOptions != nil && acss.MandateOptions.TransactionType != "" {
			acssParams.MandateOptions = &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsACSSDebitMandateOptionsParams{
				TransactionType: stripeapi.String(string(acss.MandateOptions.TransactionType)),
			}
		}
		if acss.VerificationMethod != "" {
			acssParams.VerificationMethod = stripeapi.String(string(acss.VerificationMethod))
		}
		params.ACSSDebit = acssParams
	}
	if bancontact := options.Bancontact; bancontact != nil {
		bancontactParams := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsBancontactParams{}
		if bancontact.PreferredLanguage != "" {
			bancontactParams.PreferredLanguage = stripeapi.String(string(bancontact.PreferredLanguage))
		}
		params.Bancontact = bancontactParams
	}
	if card := options.Card; card != nil {
		cardParams := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsCardParams{}
		if mandate := card.MandateOptions; mandate != nil {
			mandateParams := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsCardMandateOptionsParams{}
			if mandate.Amount != 0 {
				mandateParams.Amount = stripeapi.Int64(mandate.Amount)
			}
			if mandate.AmountType != "" {
				mandateParams.AmountType = stripeapi.String(string(mandate.AmountType))
			}
			if mandate.Description != "" {
				mandateParams.Description = stripeapi.String(mandate.Description)
			}
			cardParams.MandateOptions = mandateParams
		}
		if card.Network != "" {
			cardParams.Network = stripeapi.String(string(card.Network))
		}
		if card.RequestThreeDSecure != "" {
			cardParams.RequestThreeDSecure = stripeapi.String(string(card.RequestThreeDSecure))
		}
		params.Card = cardParams
	}
	if balance := options.CustomerBalance; balance != nil {
		balanceParams := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsCustomerBalanceParams{}
		if transfer := balance.BankTransfer; transfer != nil {
			transferParams := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsCustomerBalanceBankTransferParams{}
			if transfer.EUBankTransfer != nil && transfer.EUBankTransfer.Country != "" {
				transferParams.EUBankTransfer = &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsCustomerBalanceBankTransferEUBankTransferParams{
					Country: stripeapi.String(transfer.EUBankTransfer.Country),
				}
			}
			if transfer.Type != "" {
				transferParams.Type = stripeapi.String(transfer.Type)
			}
			balanceParams.BankTransfer = transferParams
		}
		if balance.FundingType != "" {
			balanceParams.FundingType = stripeapi.String(string(balance.FundingType))
		}
		params.CustomerBalance = balanceParams
	}
	if options.Konbini != nil {
		params.Konbini = &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsKonbiniParams{}
	}
	if options.SEPADebit != nil {
		params.SEPADebit = &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsSEPADebitParams{}
	}
	if bank := options.USBankAccount; bank != nil {
		bankParams := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsUSBankAccountParams{}
		if connections := bank.FinancialConnections; connections != nil {
			connectionsParams := &stripeapi.SubscriptionPaymentSettingsPaymentMethodOptionsUSBankAccountFinancialConnectionsParams{}
			for _, permission := range connections.Permissions {
				connectionsParams.Permissions = append(connectionsParams.Permissions, stripeapi.String(string(permission)))
			}
			for _, prefetch := range connections.Prefetch {
				connectionsParams.Prefetch = append(connectionsParams.Prefetch, stripeapi.String(string(prefetch)))
			}
			bankParams.FinancialConnections = connectionsParams
		}
		if bank.VerificationMethod != "" {
			bankParams.VerificationMethod = stripeapi.String(string(bank.VerificationMethod))
		}
		params.USBankAccount = bankParams
	}
	return params
}
