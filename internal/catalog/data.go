package catalog

import (
	"github.com/shopspring/decimal"

	"tourdesk/internal/models"
)

func onSale(date, city, venue, address, day string, standard, vip int64, standardSeats, vipSeats int) models.Show {
	return models.Show{
		ID:            models.ShowID(city, date),
		Date:          date,
		City:          city,
		Venue:         venue,
		Address:       address,
		Day:           day,
		StandardPrice: decimal.NewFromInt(standard),
		VIPPrice:      decimal.NewFromInt(vip),
		StandardSeats: standardSeats,
		VIPSeats:      vipSeats,
	}
}

func soldOut(date, city, venue, address, day string, standard, vip int64) models.Show {
	s := onSale(date, city, venue, address, day, standard, vip, 0, 0)
	s.SoldOut = true
	return s
}

// tourData is the built-in 2026 tour schedule
var tourData = []models.Region{
	{
		Name:  "ASIA-PACIFIC",
		Emoji: "🌏",
		Countries: []models.Country{
			{
				Name: "SOUTH KOREA",
				Flag: "🇰🇷",
				Shows: []models.Show{
					soldOut("04.09", "Goyang", "Goyang Stadium", "1601 Jungang-ro, Goyang", "Thursday", 650, 1500),
					soldOut("04.11", "Goyang", "Goyang Stadium", "1601 Jungang-ro, Goyang", "Saturday", 800, 1800),
					soldOut("04.12", "Goyang", "Goyang Stadium", "1601 Jungang-ro, Goyang", "Sunday", 850, 1900),
					soldOut("06.12", "Busan", "Busan Asiad Stadium", "344 World Cup-daero, Busan", "Friday", 600, 1400),
					soldOut("06.13", "Busan", "Busan Asiad Stadium", "344 World Cup-daero, Busan", "Saturday", 750, 1700),
				},
			},
			{
				Name: "JAPAN",
				Flag: "🇯🇵",
				Shows: []models.Show{
					soldOut("04.17", "Tokyo", "Tokyo Dome", "1-3-61 Koraku, Tokyo", "Friday", 950, 2400),
					soldOut("04.18", "Tokyo", "Tokyo Dome", "1-3-61 Koraku, Tokyo", "Saturday", 1000, 2500),
					soldOut("04.19", "Tokyo", "Tokyo Dome", "1-3-61 Koraku, Tokyo", "Sunday", 1100, 2700),
					soldOut("04.21", "Osaka", "Kyocera Dome", "3-2-1 Chiyozaki, Osaka", "Tuesday", 750, 1800),
					soldOut("04.22", "Osaka", "Kyocera Dome", "3-2-1 Chiyozaki, Osaka", "Wednesday", 750, 1800),
					soldOut("04.24", "Nagoya", "Vantelin Dome", "1-1-1 Nagoya", "Friday", 700, 1600),
				},
			},
			{
				Name: "THAILAND",
				Flag: "🇹🇭",
				Shows: []models.Show{
					onSale("12.03", "Bangkok", "Rajamangala Stadium", "Hua Mak, Bang Kapi, Bangkok", "Thursday", 550, 1600, 0, 34),
					onSale("12.04", "Bangkok", "Rajamangala Stadium", "Hua Mak, Bang Kapi, Bangkok", "Friday", 700, 2000, 0, 38),
					onSale("12.06", "Bangkok", "Rajamangala Stadium", "Hua Mak, Bang Kapi, Bangkok", "Sunday", 750, 2200, 0, 31),
				},
			},
		},
	},
	{
		Name:  "NORTH AMERICA",
		Emoji: "🌎",
		Countries: []models.Country{
			{
				Name: "UNITED STATES",
				Flag: "🇺🇸",
				Shows: []models.Show{
					onSale("04.25", "Tampa", "Raymond James Stadium", "4201 N Dale Mabry Hwy, Tampa", "Saturday", 900, 2800, 0, 36),
					onSale("04.26", "Tampa", "Raymond James Stadium", "4201 N Dale Mabry Hwy, Tampa", "Sunday", 950, 3000, 0, 40),
					onSale("04.28", "Tampa", "Raymond James Stadium", "4201 N Dale Mabry Hwy, Tampa", "Tuesday", 800, 2500, 0, 33),
					onSale("05.23", "Las Vegas", "Allegiant Stadium", "3333 Al Davis Way, Las Vegas", "Saturday", 1300, 3800, 0, 37),
					onSale("05.25", "Las Vegas", "Allegiant Stadium", "3333 Al Davis Way, Las Vegas", "Monday", 1100, 3200, 0, 30),
					onSale("05.27", "Las Vegas", "Allegiant Stadium", "3333 Al Davis Way, Las Vegas", "Wednesday", 1100, 3200, 0, 39),
					onSale("05.28", "Las Vegas", "Allegiant Stadium", "3333 Al Davis Way, Las Vegas", "Thursday", 1150, 3300, 0, 35),
					onSale("08.01", "New Jersey", "MetLife Stadium", "1 MetLife Stadium Dr, NJ", "Saturday", 1100, 3200, 0, 32),
					onSale("08.27", "Chicago", "Soldier Field", "1410 S. Museum Campus Dr", "Thursday", 900, 2600, 0, 34),
					onSale("09.01", "Los Angeles", "SoFi Stadium", "1001 Stadium Dr, Inglewood", "Tuesday", 1200, 3500, 0, 38),
					onSale("09.03", "Los Angeles", "SoFi Stadium", "1001 Stadium Dr, Inglewood", "Thursday", 1200, 3500, 0, 31),
					onSale("09.05", "Los Angeles", "SoFi Stadium", "1001 Stadium Dr, Inglewood", "Saturday", 1500, 4500, 0, 36),
					onSale("09.06", "Los Angeles", "SoFi Stadium", "1001 Stadium Dr, Inglewood", "Sunday", 1600, 4800, 0, 40),
				},
			},
			{
				Name: "MEXICO & CANADA",
				Flag: "🇲🇽 🇨🇦",
				Shows: []models.Show{
					onSale("05.07", "Mexico City", "Estadio GNP Seguros", "Viad. Río de la Piedad S/N", "Thursday", 650, 1800, 0, 33),
					onSale("05.09", "Mexico City", "Estadio GNP Seguros", "Viad. Río de la Piedad S/N", "Saturday", 800, 2200, 0, 37),
					onSale("08.22", "Toronto", "Rogers Centre", "1 Blue Jays Way, Toronto", "Saturday", 750, 2200, 0, 30),
				},
			},
		},
	},
	{
		Name:  "EUROPE",
		Emoji: "🌍",
		Countries: []models.Country{
			{
				Name: "UNITED KINGDOM & FRANCE",
				Flag: "🇬🇧 🇫🇷",
				Shows: []models.Show{
					onSale("07.06", "London", "Tottenham Stadium", "782 High Rd, London", "Monday", 1300, 4000, 0, 39),
					onSale("07.07", "London", "Tottenham Stadium", "782 High Rd, London", "Tuesday", 1350, 4200, 0, 35),
					onSale("07.17", "Paris", "Stade de France", "93200 Saint-Denis, Paris", "Friday", 1100, 3200, 0, 32),
					onSale("07.18", "Paris", "Stade de France", "93200 Saint-Denis, Paris", "Saturday", 1300, 3800, 0, 34),
				},
			},
		},
	},
	{
		Name:  "LATIN AMERICA",
		Emoji: "🌎",
		Countries: []models.Country{
			{
				Name: "BRAZIL & ARGENTINA",
				Flag: "🇧🇷 🇦🇷",
				Shows: []models.Show{
					onSale("10.23", "Buenos Aires", "Estadio Monumental", "Av. Pres. Figueroa Alcorta", "Friday", 600, 1800, 0, 38),
					onSale("10.28", "São Paulo", "Allianz Parque", "Av. Francisco Matarazzo", "Wednesday", 700, 2000, 0, 31),
					onSale("10.30", "São Paulo", "Allianz Parque", "Av. Francisco Matarazzo", "Friday", 900, 2400, 0, 36),
					onSale("10.31", "São Paulo", "Allianz Parque", "Av. Francisco Matarazzo", "Saturday", 950, 2600, 0, 40),
				},
			},
		},
	},
}
