package catalog

import "github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"

func rupees(v int64) *int64 { return &v }

// Seed 内置商品目录，数据库为空时使用；每次调用返回新的副本
func Seed() []*product.Product {
	list := []*product.Product{
		{
			ID: "tv-oled-55", Name: "NexaView OLED 55\" 4K Smart TV", Category: product.CategoryTV,
			Price: 89999, OriginalPrice: rupees(109999), Rating: 4.7, ReviewCount: 412,
			InStock: true, IsBestSeller: true,
			Image:      "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?w=800",
			ShortSpecs: "55\" OLED | 4K HDR | 120Hz | Dolby Vision",
			Features:   []string{"Self-lit OLED pixels", "Dolby Vision IQ and Atmos", "120Hz with VRR for gaming", "Hands-free voice assistant", "Slim wall-mount design"},
			Specs: []product.Spec{
				{Label: "Screen Size", Value: "55 inch"},
				{Label: "Resolution", Value: "3840 x 2160"},
				{Label: "Panel", Value: "OLED"},
				{Label: "Refresh Rate", Value: "120Hz"},
				{Label: "HDMI Ports", Value: "4 (2x HDMI 2.1)"},
			},
			FAQs: []product.FAQ{
				{Question: "Is wall mounting included?", Answer: "Yes, free installation with a wall mount kit."},
				{Question: "Does it support screen mirroring?", Answer: "Yes, it supports Miracast and AirPlay 2."},
			},
		},
		{
			ID: "tv-qled-65", Name: "NexaView QLED 65\" 4K TV", Category: product.CategoryTV,
			Price: 74999, OriginalPrice: rupees(84999), Rating: 4.5, ReviewCount: 268,
			InStock: true, IsNew: true,
			Image:      "https://images.unsplash.com/photo-1601944179066-29786cb9d32a?w=800",
			ShortSpecs: "65\" QLED | 4K HDR10+ | 60Hz",
			Features:   []string{"Quantum dot colour", "HDR10+ support", "Built-in Chromecast", "Bezel-less design"},
			Specs: []product.Spec{
				{Label: "Screen Size", Value: "65 inch"},
				{Label: "Resolution", Value: "3840 x 2160"},
				{Label: "Panel", Value: "QLED"},
				{Label: "Refresh Rate", Value: "60Hz"},
				{Label: "Speakers", Value: "40W 2.1 channel"},
			},
			FAQs: []product.FAQ{
				{Question: "What is the warranty period?", Answer: "1 year comprehensive plus 1 year on the panel."},
			},
		},
		{
			ID: "tv-led-43", Name: "NexaView 43\" Full HD LED TV", Category: product.CategoryTV,
			Price: 24999, Rating: 4.1, ReviewCount: 893,
			InStock: false,
			Image:      "https://images.unsplash.com/photo-1509281373149-e957c6296406?w=800",
			ShortSpecs: "43\" LED | Full HD | Smart TV",
			Features:   []string{"Full HD panel", "Smart apps preloaded", "Dual-band Wi-Fi"},
			Specs: []product.Spec{
				{Label: "Screen Size", Value: "43 inch"},
				{Label: "Resolution", Value: "1920 x 1080"},
				{Label: "Panel", Value: "LED"},
				{Label: "Refresh Rate", Value: "60Hz"},
			},
		},
		{
			ID: "laptop-pro-16", Name: "NexaBook Pro 16", Category: product.CategoryLaptop,
			Price: 149999, OriginalPrice: rupees(164999), Rating: 4.8, ReviewCount: 321,
			InStock: true, IsBestSeller: true, IsNew: true,
			Image:      "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800",
			ShortSpecs: "Core i9 | 32GB | 1TB SSD | RTX 4070",
			Features:   []string{"16\" 240Hz QHD+ display", "RTX 4070 graphics", "Vapour chamber cooling", "Per-key RGB keyboard", "Thunderbolt 4"},
			Specs: []product.Spec{
				{Label: "Processor", Value: "Intel Core i9-13900H"},
				{Label: "RAM", Value: "32GB DDR5"},
				{Label: "Storage", Value: "1TB NVMe SSD"},
				{Label: "Display", Value: "16\" QHD+ 240Hz"},
				{Label: "Graphics", Value: "NVIDIA RTX 4070 8GB"},
				{Label: "Weight", Value: "2.3 kg"},
			},
			FAQs: []product.FAQ{
				{Question: "Can the RAM be upgraded?", Answer: "Yes, up to 64GB across two SO-DIMM slots."},
			},
		},
		{
			ID: "laptop-air-14", Name: "NexaBook Air 14", Category: product.CategoryLaptop,
			Price: 64999, OriginalPrice: rupees(72999), Rating: 4.4, ReviewCount: 540,
			InStock: true, IsBestSeller: true,
			Image:      "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=800",
			ShortSpecs: "Ryzen 7 | 16GB | 512GB SSD | 1.2 kg",
			Features:   []string{"All-day battery", "Fanless design", "14\" 2.8K OLED", "Fingerprint login"},
			Specs: []product.Spec{
				{Label: "Processor", Value: "AMD Ryzen 7 7840U"},
				{Label: "RAM", Value: "16GB LPDDR5"},
				{Label: "Storage", Value: "512GB NVMe SSD"},
				{Label: "Display", Value: "14\" 2.8K OLED"},
				{Label: "Battery", Value: "70Wh"},
				{Label: "Weight", Value: "1.2 kg"},
			},
		},
		{
			ID: "laptop-edu-15", Name: "NexaBook Edu 15", Category: product.CategoryLaptop,
			Price: 38999, Rating: 4.0, ReviewCount: 122,
			InStock: true, IsNew: true,
			Image:      "https://images.unsplash.com/photo-1525547719571-a2d4ac8945e2?w=800",
			ShortSpecs: "Core i5 | 8GB | 512GB SSD",
			Features:   []string{"15.6\" Full HD anti-glare", "Rapid charge", "Webcam privacy shutter"},
			Specs: []product.Spec{
				{Label: "Processor", Value: "Intel Core i5-1235U"},
				{Label: "RAM", Value: "8GB DDR4"},
				{Label: "Storage", Value: "512GB SSD"},
				{Label: "Display", Value: "15.6\" Full HD"},
			},
		},
		{
			ID: "pc-titan", Name: "NexaStation Titan Gaming PC", Category: product.CategoryPC,
			Price: 189999, OriginalPrice: rupees(209999), Rating: 4.9, ReviewCount: 88,
			InStock: true, IsBestSeller: true,
			Image:      "https://images.unsplash.com/photo-1587202372775-e229f172b9d7?w=800",
			ShortSpecs: "Ryzen 9 | 64GB | 2TB SSD | RTX 4080",
			Features:   []string{"Liquid cooled CPU", "Tempered glass chassis", "850W Gold PSU", "Wi-Fi 6E"},
			Specs: []product.Spec{
				{Label: "Processor", Value: "AMD Ryzen 9 7950X"},
				{Label: "RAM", Value: "64GB DDR5"},
				{Label: "Storage", Value: "2TB NVMe SSD"},
				{Label: "Graphics", Value: "NVIDIA RTX 4080 16GB"},
				{Label: "Power Supply", Value: "850W 80+ Gold"},
			},
		},
		{
			ID: "pc-office", Name: "NexaStation Office Mini", Category: product.CategoryPC,
			Price: 42999, Rating: 4.2, ReviewCount: 205,
			InStock: true, IsNew: true,
			Image:      "https://images.unsplash.com/photo-1593640408182-31c70c8268f5?w=800",
			ShortSpecs: "Core i5 | 16GB | 512GB SSD | Mini tower",
			Features:   []string{"Compact 8L chassis", "Dual display output", "Quiet operation"},
			Specs: []product.Spec{
				{Label: "Processor", Value: "Intel Core i5-13400"},
				{Label: "RAM", Value: "16GB DDR4"},
				{Label: "Storage", Value: "512GB NVMe SSD"},
				{Label: "Form Factor", Value: "Mini tower"},
			},
		},
		{
			ID: "pc-creator", Name: "NexaStation Creator", Category: product.CategoryPC,
			Price: 119999, Rating: 4.6, ReviewCount: 64,
			InStock: false,
			Image:      "https://images.unsplash.com/photo-1547082299-de196ea013d6?w=800",
			ShortSpecs: "Core i7 | 32GB | 1TB SSD | RTX 4060 Ti",
			Features:   []string{"Colour-accurate workflow tuning", "Front USB-C 20Gbps", "Tool-less upgrades"},
			Specs: []product.Spec{
				{Label: "Processor", Value: "Intel Core i7-14700K"},
				{Label: "RAM", Value: "32GB DDR5"},
				{Label: "Storage", Value: "1TB NVMe SSD"},
				{Label: "Graphics", Value: "NVIDIA RTX 4060 Ti 16GB"},
			},
		},
		{
			ID: "part-ssd-1tb", Name: "NexaDrive 1TB NVMe SSD", Category: product.CategorySpareParts,
			Price: 6999, OriginalPrice: rupees(8999), Rating: 4.6, ReviewCount: 1520,
			InStock: true, IsBestSeller: true,
			Image:      "https://images.unsplash.com/photo-1597872200969-2b65d56bd16b?w=800",
			ShortSpecs: "PCIe 4.0 | 7000 MB/s read",
			Features:   []string{"PCIe Gen4 x4", "Graphene heat spreader", "5 year warranty"},
			Specs: []product.Spec{
				{Label: "Capacity", Value: "1TB"},
				{Label: "Interface", Value: "PCIe 4.0 x4 NVMe"},
				{Label: "Read Speed", Value: "7000 MB/s"},
				{Label: "Write Speed", Value: "5000 MB/s"},
			},
		},
		{
			ID: "part-ram-16", Name: "NexaMem 16GB DDR5 RAM", Category: product.CategorySpareParts,
			Price: 4499, Rating: 4.5, ReviewCount: 760,
			InStock: true,
			Image:      "https://images.unsplash.com/photo-1562976540-1502c2145186?w=800",
			ShortSpecs: "DDR5 | 5600 MHz | CL36",
			Features:   []string{"XMP 3.0 profiles", "Aluminium heatsink"},
			Specs: []product.Spec{
				{Label: "Capacity", Value: "16GB"},
				{Label: "Type", Value: "DDR5"},
				{Label: "Speed", Value: "5600 MHz"},
			},
		},
		{
			ID: "part-psu-750", Name: "NexaPower 750W PSU", Category: product.CategorySpareParts,
			Price: 7999, Rating: 4.3, ReviewCount: 310,
			InStock: true, IsNew: true,
			Image:      "https://images.unsplash.com/photo-1591488320449-011701bb6704?w=800",
			ShortSpecs: "750W | 80+ Gold | Fully modular",
			Features:   []string{"Fully modular cables", "Zero-RPM fan mode", "10 year warranty"},
			Specs: []product.Spec{
				{Label: "Wattage", Value: "750W"},
				{Label: "Efficiency", Value: "80+ Gold"},
				{Label: "Modular", Value: "Fully modular"},
			},
		},
	}
	for i, p := range list {
		p.Position = i
	}
	return list
}
