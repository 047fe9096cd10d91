package migrate

import (
	stripeapi "github.com/stripe/stripe-go/v81"
)

// FetchProducts returns every product in the account, in listing order.
func (m *Migrator) FetchProducts(api API) ([]*stripeapi.Product, error) {
	return fetchAll(m.Log, "products", func(p *stripeapi.Product) string { return p.ID }, api.Products)
}

// productParams maps a product into its creation request. The tax code
// reference may arrive expanded or as a bare ID and is always sent as the
// ID.
func productParams(product *stripeapi.Product) *stripeapi.ProductParams {
	params := &stripeapi.ProductParams{
		ID:   stripeapi.String(product.ID),
		Name: stripeapi.String(product.Name),
	}
	params.Metadata = product.Metadata
	if product.Description != "" {
		params.Description = stripeapi.String(product.Description)
	}
	if len(product.Images) > 0 {
		params.Images = stripeapi.StringSlice(product.Images)
	}
	if product.PackageDimensions != nil {
		params.PackageDimensions = &stripeapi.ProductPackageDimensionsParams{
			Height: stripeapi.Float64(product.PackageDimensions.Height),
			Length: stripeapi.Float64(product.PackageDimensions.Length),
			Weight: stripeapi.Float64(product.PackageDimensions.Weight),
			Width:  stripeapi.Float64(product.PackageDimensions.Width),
		}
	}
	if product.Shippable {
		params.Shippable = stripeapi.Bool(product.Shippable)
	}
	if product.StatementDescriptor != "" {
		params.StatementDescriptor = stripeapi.String(product.StatementDescriptor)
	}
	if product.TaxCode != nil {
		params.TaxCode = stripeapi.String(product.TaxCode.ID)
	}
	if product.Type != "" {
		params.Type = stripeapi.String(string(product.Type))
	}
	if product.UnitLabel != "" {
		params.UnitLabel = stripeapi.String(product.UnitLabel)
	}
	if product.URL != "" {
		params.URL = stripeapi.String(product.URL)
	}
	return params
}

// Products copies every active product from the source account to the
// destination, skipping products that already exist there. The returned
// slice holds the created products in source order, with a nil entry per
// skip.
func (m *Migrator) Products() ([]*stripeapi.Product, error) {
	products, err := m.FetchProducts(m.From)
	if err != nil {
		return nil, err
	}
	var active []*stripeapi.Product
	for _, product := range products {
		if product.Active {
			active = append(active, product)
		}
	}
	return createAll(m.Log, "product", true, active,
		func(p *stripeapi.Product) string { return p.ID },
		func(p *stripeapi.Product) (*stripeapi.Product, error) {
			created, err := m.To.CreateProduct(productParams(p))
			if err != nil {
				return nil, err
			}
			m.Log.Infof("created product %s (%s)", created.Name, created.ID)
			return created, nil
		})
}
