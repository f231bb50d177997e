// Package menu holds the presentation data of dishes and the menu day helpers.
package menu

import (
	"canteen-web/internal/api"
)

// PlaceholderImage is shown for dishes without a picture
const PlaceholderImage = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400&h=300&fit=crop"

// Facts are nutrition values per 100 g
type Facts struct {
	Kcal    float64
	Protein float64
	Fat     float64
	Carbs   float64
}

// Known reports whether any value is set
func (f Facts) Known() bool {
	return f.Kcal != 0 || f.Protein != 0 || f.Fat != 0 || f.Carbs != 0
}

// Meta is the static presentation data of a dish
type Meta struct {
	Image  string
	DescKZ string
	DescRU string
	DescEN string
	Facts  Facts
}

// Keyed by backend item id
var metas = map[string]Meta{
	"item-1": {
		Image:  "https://images.unsplash.com/photo-1547592166-23ac45744acd?w=400&h=300&fit=crop",
		DescKZ: "Дәстүрлі орыс сорпасы, қызылша және көкөністермен",
		DescRU: "Традиционный свекольный суп с овощами",
		DescEN: "Traditional beet soup with vegetables",
		Facts:  Facts{45, 1.5, 1.8, 5.5},
	},
	"item-2": {
		Image:  "https://images.unsplash.com/photo-1583577612013-4fecf7bf8f13?w=400&h=300&fit=crop",
		DescKZ: "Қой етінен дайындалған дәстүрлі сорпа",
		DescRU: "Традиционный суп из баранины с овощами",
		DescEN: "Traditional lamb soup with vegetables",
		Facts:  Facts{55, 3.5, 2.8, 4.2},
	},
	"item-3": {
		Image:  "https://images.unsplash.com/photo-1596097635121-14b63b7a0c19?w=400&h=300&fit=crop",
		DescKZ: "Өзбек тәсілімен дайындалған палау",
		DescRU: "Узбекский плов с мясом и морковью",
		DescEN: "Uzbek pilaf with meat and carrots",
		Facts:  Facts{180, 6.5, 8.5, 22},
	},
	"item-4": {
		Image:  "https://images.unsplash.com/photo-1529042410759-befb1204b468?w=400&h=300&fit=crop",
		DescKZ: "Үй котлеті, гарнирмен",
		DescRU: "Домашняя котлета с гарниром",
		DescEN: "Homemade cutlet with side dish",
		Facts:  Facts{220, 15, 14, 8},
	},
	"item-5": {
		Image:  "https://images.unsplash.com/photo-1516684732162-798a0062be99?w=400&h=300&fit=crop",
		DescKZ: "Буға піскен ақ күріш",
		DescRU: "Отварной белый рис",
		DescEN: "Steamed white rice",
		Facts:  Facts{130, 2.7, 0.3, 28},
	},
	"item-6": {
		Image:  "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=400&h=300&fit=crop",
		DescKZ: "Жаңа көкөністерден жасалған салат",
		DescRU: "Свежий овощной салат",
		DescEN: "Fresh vegetable salad",
		Facts:  Facts{35, 1.2, 0.2, 7},
	},
	"item-7": {
		Image:  "https://images.unsplash.com/photo-1534353473418-4cfa6c56fd38?w=400&h=300&fit=crop",
		DescKZ: "Жеміс компоты",
		DescRU: "Фруктовый компот",
		DescEN: "Fruit compote drink",
		Facts:  Facts{40, 0.1, 0, 10},
	},
	"item-8": {
		Image:  "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=400&h=300&fit=crop",
		DescKZ: "Ыстық шай",
		DescRU: "Горячий чай",
		DescEN: "Hot tea",
	},
	"item-9": {
		Image:  "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&h=300&fit=crop",
		DescKZ: "Салмасы бар бәліш",
		DescRU: "Пирожок с начинкой",
		DescEN: "Stuffed pastry",
		Facts:  Facts{290, 5.5, 12, 38},
	},
	"item-10": {
		Image:  "https://images.unsplash.com/photo-1558961363-fa8fdf82db35?w=400&h=300&fit=crop",
		DescKZ: "Жаңа піскен тоқаш",
		DescRU: "Свежая булочка",
		DescEN: "Fresh bun",
		Facts:  Facts{310, 7, 8, 52},
	},
}

// ItemMeta returns the presentation data of the dish with the given id
func ItemMeta(id string) (Meta, bool) {
	m, ok := metas[id]
	return m, ok
}

// Description returns the description in lang, falling back to English then Russian
func (m Meta) Description(lang string) string {
	switch {
	case lang == "kz" && m.DescKZ != "":
		return m.DescKZ
	case lang == "ru" && m.DescRU != "":
		return m.DescRU
	case m.DescEN != "":
		return m.DescEN
	}
	return m.DescRU
}

// Image returns the picture of a dish
func Image(item api.MenuItem) string {
	if m, ok := metas[item.ID]; ok && m.Image != "" {
		return m.Image
	}
	if item.ImageURL != "" {
		return item.ImageURL
	}
	return PlaceholderImage
}

// Nutrition returns the nutrition values of a dish, preferring the static metadata
func Nutrition(item api.MenuItem) (Facts, bool) {
	if m, ok := metas[item.ID]; ok && m.Facts.Known() {
		return m.Facts, true
	}
	if n := item.Nutrition; n != nil {
		f := Facts{Kcal: n.Calories, Protein: n.Protein, Fat: n.Fat, Carbs: n.Carbs}
		return f, f.Known()
	}
	return Facts{}, false
}

// LocalizedName picks the dish name for lang
func LocalizedName(item api.MenuItem, lang string) string {
	switch {
	case lang == "kz" && item.NameKZ != "":
		return item.NameKZ
	case lang == "ru" && item.NameRU != "":
		return item.NameRU
	case lang == "en" && item.NameEN != "":
		return item.NameEN
	}
	return firstNonEmpty(item.Name, item.NameRU, item.NameKZ)
}

// CatalogName picks the catalog dish name for lang
func CatalogName(item api.CatalogItem, lang string) string {
	return names(lang, item.NameKZ, item.NameRU, item.NameEN)
}

// AdminName picks the admin menu row name for lang
func AdminName(item api.AdminMenuItem, lang string) string {
	return names(lang, item.NameKZ, item.NameRU, item.NameEN)
}

func names(lang, kz, ru, en string) string {
	switch {
	case lang == "kz" && kz != "":
		return kz
	case lang == "ru" && ru != "":
		return ru
	case lang == "en" && en != "":
		return en
	}
	if s := firstNonEmpty(ru, kz, en); s != "" {
		return s
	}
	return "—"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

/*
This project is the web client of the Smart Canteen ordering service. It renders the menu, cart, kitchen and admin pages on top of the canteen backend API.
Smart Canteen Web Copyright (C) 2025 Smart Canteen contributors
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
