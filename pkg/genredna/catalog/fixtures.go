package catalog

import (
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

// DefaultSongs returns the demo song database: three songs per genre.
func DefaultSongs() []models.Song {
	return []models.Song{
		{ID: "rock-1", Title: "Thunder Road", Artist: "The Midnight", Genre: models.Rock, Duration: "4:23"},
		{ID: "rock-2", Title: "Electric Storm", Artist: "Voltage", Genre: models.Rock, Duration: "3:45"},
		{ID: "rock-3", Title: "Rebel Heart", Artist: "Stone Revival", Genre: models.Rock, Duration: "5:12"},

		{ID: "pop-1", Title: "Neon Lights", Artist: "Aurora Sky", Genre: models.Pop, Duration: "3:18"},
		{ID: "pop-2", Title: "Dancing in June", Artist: "Summer Days", Genre: models.Pop, Duration: "3:42"},
		{ID: "pop-3", Title: "Heartbeat", Artist: "Luna", Genre: models.Pop, Duration: "3:55"},

		{ID: "jazz-1", Title: "Midnight Blues", Artist: "The Velvet Trio", Genre: models.Jazz, Duration: "6:30"},
		{ID: "jazz-2", Title: "Smoky Room", Artist: "Charlie Lane", Genre: models.Jazz, Duration: "5:45"},
		{ID: "jazz-3", Title: "After Hours", Artist: "Blue Note Five", Genre: models.Jazz, Duration: "7:12"},

		{ID: "classical-1", Title: "Moonlight Sonata", Artist: "Vienna Symphony", Genre: models.Classical, Duration: "8:45"},
		{ID: "classical-2", Title: "Spring Awakening", Artist: "Prague Orchestra", Genre: models.Classical, Duration: "12:30"},
		{ID: "classical-3", Title: "Nocturne in E", Artist: "Anna Petrova", Genre: models.Classical, Duration: "5:20"},

		{ID: "hiphop-1", Title: "City Lights", Artist: "Metro Flow", Genre: models.HipHop, Duration: "3:28"},
		{ID: "hiphop-2", Title: "Real Talk", Artist: "King Verse", Genre: models.HipHop, Duration: "4:15"},
		{ID: "hiphop-3", Title: "Street Dreams", Artist: "Lyrical Storm", Genre: models.HipHop, Duration: "3:52"},

		{ID: "electronic-1", Title: "Synthwave", Artist: "Digital Echo", Genre: models.Electronic, Duration: "5:30"},
		{ID: "electronic-2", Title: "Binary Code", Artist: "Circuit Breaker", Genre: models.Electronic, Duration: "4:45"},
		{ID: "electronic-3", Title: "Neon Dreams", Artist: "Pulse", Genre: models.Electronic, Duration: "6:12"},

		{ID: "blues-1", Title: "Delta Morning", Artist: "Robert James", Genre: models.Blues, Duration: "4:55"},
		{ID: "blues-2", Title: "Crossroads", Artist: "Muddy Waters Jr.", Genre: models.Blues, Duration: "5:30"},
		{ID: "blues-3", Title: "Sweet Sorrow", Artist: "Memphis Soul", Genre: models.Blues, Duration: "6:10"},

		{ID: "country-1", Title: "Dusty Roads", Artist: "Nashville Stars", Genre: models.Country, Duration: "3:45"},
		{ID: "country-2", Title: "Home Again", Artist: "Dixie Heart", Genre: models.Country, Duration: "4:20"},
		{ID: "country-3", Title: "Wildflower", Artist: "Country Rose", Genre: models.Country, Duration: "3:58"},

		{ID: "metal-1", Title: "Iron Thunder", Artist: "Blackforge", Genre: models.Metal, Duration: "5:45"},
		{ID: "metal-2", Title: "Rage Eternal", Artist: "Steel Storm", Genre: models.Metal, Duration: "6:30"},
		{ID: "metal-3", Title: "Dark Descent", Artist: "Obsidian", Genre: models.Metal, Duration: "7:15"},

		{ID: "reggae-1", Title: "Island Vibes", Artist: "Kingston Sound", Genre: models.Reggae, Duration: "4:30"},
		{ID: "reggae-2", Title: "One Love", Artist: "Roots Revival", Genre: models.Reggae, Duration: "5:15"},
		{ID: "reggae-3", Title: "Sunshine", Artist: "Caribbean Breeze", Genre: models.Reggae, Duration: "4:45"},
	}
}

// DefaultSamples returns the preset sample descriptors.
func DefaultSamples() []models.SampleAudio {
	return []models.SampleAudio{
		{ID: "sample-1", Name: "Rock Guitar Riff.wav", Genre: models.Rock},
		{ID: "sample-2", Name: "Jazz Piano Solo.wav", Genre: models.Jazz},
		{ID: "sample-3", Name: "Electronic Beat.wav", Genre: models.Electronic},
		{ID: "sample-4", Name: "Classical Violin.wav", Genre: models.Classical},
		{ID: "sample-5", Name: "Hip Hop Beat.wav", Genre: models.HipHop},
	}
}
