package catalog

import "github.com/pranav/snapquest/internal/challenge"

// judgmentSeed holds the detection-target labels per difficulty.
// Pools must be large enough for the widest grid: hard needs the
// target plus three distractors.
var judgmentSeed = map[challenge.Difficulty][]string{
	challenge.Easy: {
		"dog", "cat", "bird", "fish", "rabbit",
		"apple", "banana", "car", "tree", "house",
	},
	challenge.Medium: {
		"bicycle", "bus", "traffic light", "fire hydrant", "bench",
		"umbrella", "backpack", "bottle", "cup", "chair",
	},
	challenge.Hard: {
		"crosswalk", "storefront", "street sign", "motorcycle",
		"scooter", "mailbox", "lamp post", "vending machine",
		"fountain", "statue",
	},
}

// collectionSeed holds the literal submission prompts per category and
// difficulty.
var collectionSeed = map[challenge.Category]map[challenge.Difficulty][]string{
	challenge.CategoryAnimal: {
		challenge.Easy: {
			"Snap a photo of any animal near you",
			"Snap a photo of a pet",
			"Snap a photo of a bird",
		},
		challenge.Medium: {
			"Snap a photo of an animal eating",
			"Snap a photo of two animals together",
			"Snap a photo of an animal in motion",
		},
		challenge.Hard: {
			"Snap a photo of a wild animal in its habitat",
			"Snap a photo of an animal interacting with a person",
		},
	},
	challenge.CategoryPlant: {
		challenge.Easy: {
			"Snap a photo of a flower",
			"Snap a photo of a tree",
			"Snap a photo of a potted plant",
		},
		challenge.Medium: {
			"Snap a photo of a plant growing through concrete",
			"Snap a photo of fallen leaves",
			"Snap a photo of a fruit still on its plant",
		},
		challenge.Hard: {
			"Snap a photo of three different plant species in one frame",
			"Snap a photo of a plant at sunrise or sunset",
		},
	},
	challenge.CategoryPerson: {
		challenge.Easy: {
			"Snap a photo of someone smiling",
			"Snap a photo of someone waving",
			"Snap a selfie",
		},
		challenge.Medium: {
			"Snap a photo of someone at work",
			"Snap a photo of someone playing a sport",
			"Snap a photo of someone reading",
		},
		challenge.Hard: {
			"Snap a candid photo of a group activity",
			"Snap a photo of someone practicing a craft",
		},
	},
	challenge.CategoryStreet: {
		challenge.Easy: {
			"Snap a photo of a street sign",
			"Snap a photo of a storefront",
			"Snap a photo of a parked bicycle",
		},
		challenge.Medium: {
			"Snap a photo of a busy intersection",
			"Snap a photo of public transport",
			"Snap a photo of street art",
		},
		challenge.Hard: {
			"Snap a photo of your street at night",
			"Snap a photo capturing motion on the street",
		},
	},
	challenge.CategoryLife: {
		challenge.Easy: {
			"Snap a photo of your breakfast",
			"Snap a photo of your desk",
			"Snap a photo of something blue",
		},
		challenge.Medium: {
			"Snap a photo of a home-cooked meal",
			"Snap a photo of your favorite corner at home",
			"Snap a photo of something older than you",
		},
		challenge.Hard: {
			"Snap a photo telling a story without any people in it",
			"Snap a photo of the same object from two angles, side by side",
		},
	},
	challenge.CategoryAudio: {
		challenge.Easy: {
			"Record yourself humming a tune",
			"Record the sound of your surroundings for ten seconds",
		},
		challenge.Medium: {
			"Record yourself reading a paragraph aloud",
			"Record a rhythm tapped on any surface",
		},
		challenge.Hard: {
			"Record a one-minute narration about your day",
		},
	},
	challenge.CategoryVideo: {
		challenge.Easy: {
			"Film a short clip of the sky",
			"Film a short clip of something moving",
		},
		challenge.Medium: {
			"Film a ten-second tour of the room you are in",
			"Film a clip of water in motion",
		},
		challenge.Hard: {
			"Film a one-take clip telling a tiny story",
		},
	},
}
