package domain

var Tables = []interface{}{
	// System
	&SysAdmin{},
	// Catalog
	&Product{},
	// Quotations
	&Quotation{},
	&QuotationItem{},
}
