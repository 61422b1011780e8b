package config

import "github.com/Muditha98/LaptopInsights/internal/product"

// Products is the tracked catalog. Add new HP or Lenovo entries here;
// no code changes are needed elsewhere.
func Products() []product.Product {
	return []product.Product{
		{
			ProductID: "HP-PROBOOK-440-G11",
			Brand:     product.BrandHP,
			Model:     "ProBook 440 G11",
			URL:       "https://www.hp.com/us-en/shop/pdp/hp-probook-440-14-inch-g11-notebook-pc-p-a3rn3ua-aba-1",
		},
		{
			ProductID: "HP-PROBOOK-445-G11",
			Brand:     product.BrandHP,
			Model:     "ProBook 445 G11",
			URL:       "https://www.hp.com/us-en/shop/pdp/hp-probook-445-14-inch-g11-notebook-pc-p-a3rn8ua-aba-1",
		},
		{
			ProductID: "HP-PROBOOK-460-G11",
			Brand:     product.BrandHP,
			Model:     "ProBook 460 G11",
			URL:       "https://www.hp.com/us-en/shop/pdp/hp-probook-460-16-inch-g11-notebook-pc-p-a3rf4ua-aba-1",
		},
		{
			ProductID: "HP-PROBOOK-465-G11",
			Brand:     product.BrandHP,
			Model:     "ProBook 465 G11",
			URL:       "https://www.hp.com/us-en/shop/pdp/hp-probook-465-16-inch-g11-notebook-pc-p-a3rm0ua-aba-1",
		},
		{
			ProductID: "LENOVO-THINKPAD-E14-GEN7-AMD",
			Brand:     product.BrandLenovo,
			Model:     "ThinkPad E14 Gen 7 (AMD)",
			URL:       "https://www.lenovo.com/us/en/p/laptops/thinkpad/thinkpade/lenovo-thinkpad-e14-gen-7-14-inch-amd-laptop/21t0cto1wwus1",
		},
		{
			ProductID: "LENOVO-THINKPAD-E14-GEN7-INTEL",
			Brand:     product.BrandLenovo,
			Model:     "ThinkPad E14 Gen 7 Intel",
			URL:       "https://www.lenovo.com/us/en/p/laptops/thinkpad/thinkpade/lenovo-thinkpad-e14-gen-7-14-inch-intel/21t9004eus",
		},
		{
			ProductID: "LENOVO-THINKPAD-E16-GEN2-AMD",
			Brand:     product.BrandLenovo,
			Model:     "ThinkPad E16 Gen 2 (AMD)",
			URL:       "https://www.lenovo.com/us/en/p/laptops/thinkpad/thinkpade/lenovo-thinkpad-e16-gen-2-16-inch-amd/21m5cto1wwus2",
		},
		{
			ProductID: "LENOVO-THINKPAD-T16-GEN4-INTEL",
			Brand:     product.BrandLenovo,
			Model:     "ThinkPad T16 Gen 4 Intel",
			URL:       "https://www.lenovo.com/us/en/p/laptops/thinkpad/thinkpadt/thinkpad-t16-gen-4-16-inch-intel/21qe005qus",
		},
	}
}
