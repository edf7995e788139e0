package types

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the demographic classification recorded on a profile.
type Gender string

const (
	GenderMale      Gender = "Male"
	GenderFemale    Gender = "Female"
	GenderNonBinary Gender = "NonBinary"
)

// The seven interest categories are independent closed enumerations. A
// profile may have no preference recorded for a category, so Profile carries
// each one as a nullable pointer; absent values never contribute to a match.

type BookInterest string

const (
	BookFantasy    BookInterest = "Fantasy"
	BookSciFi      BookInterest = "SciFi"
	BookClassics   BookInterest = "Classics"
	BookDetective  BookInterest = "Detective"
	BookRomance    BookInterest = "Romance"
	BookNonFiction BookInterest = "NonFiction"
	BookPoetry     BookInterest = "Poetry"
	BookBiography  BookInterest = "Biography"
)

type SportInterest string

const (
	SportRunning     SportInterest = "Running"
	SportGym         SportInterest = "Gym"
	SportYoga        SportInterest = "Yoga"
	SportSwimming    SportInterest = "Swimming"
	SportCycling     SportInterest = "Cycling"
	SportFootball    SportInterest = "Football"
	SportTennis      SportInterest = "Tennis"
	SportHiking      SportInterest = "Hiking"
	SportMartialArts SportInterest = "MartialArts"
)

type MovieInterest string

const (
	MovieAction      MovieInterest = "Action"
	MovieComedy      MovieInterest = "Comedy"
	MovieDrama       MovieInterest = "Drama"
	MovieHorror      MovieInterest = "Horror"
	MovieThriller    MovieInterest = "Thriller"
	MovieRomance     MovieInterest = "Romance"
	MovieDocumentary MovieInterest = "Documentary"
	MovieAnimation   MovieInterest = "Animation"
)

type MusicInterest string

const (
	MusicRock       MusicInterest = "Rock"
	MusicPop        MusicInterest = "Pop"
	MusicJazz       MusicInterest = "Jazz"
	MusicClassical  MusicInterest = "Classical"
	MusicHipHop     MusicInterest = "HipHop"
	MusicElectronic MusicInterest = "Electronic"
	MusicMetal      MusicInterest = "Metal"
	MusicIndie      MusicInterest = "Indie"
	MusicFolk       MusicInterest = "Folk"
)

type FoodInterest string

const (
	FoodItalian     FoodInterest = "Italian"
	FoodAsian       FoodInterest = "Asian"
	FoodVegan       FoodInterest = "Vegan"
	FoodSeafood     FoodInterest = "Seafood"
	FoodBarbecue    FoodInterest = "Barbecue"
	FoodDesserts    FoodInterest = "Desserts"
	FoodMexican     FoodInterest = "Mexican"
	FoodHomeCooking FoodInterest = "HomeCooking"
)

type LifestyleInterest string

const (
	LifestyleActive          LifestyleInterest = "ActiveLifestyle"
	LifestyleHomebody        LifestyleInterest = "Homebody"
	LifestyleNightOwl        LifestyleInterest = "NightOwl"
	LifestyleEarlyBird       LifestyleInterest = "EarlyBird"
	LifestyleCareerDriven    LifestyleInterest = "CareerDriven"
	LifestyleFamilyOriented  LifestyleInterest = "FamilyOriented"
	LifestyleSocialButterfly LifestyleInterest = "SocialButterfly"
	LifestyleMinimalist      LifestyleInterest = "Minimalist"
	LifestyleAdventurous     LifestyleInterest = "Adventurous"
	LifestyleCreativeType    LifestyleInterest = "CreativeType"
)

type TravelInterest string

const (
	TravelBeachHolidays TravelInterest = "BeachHolidays"
	TravelCityBreaks    TravelInterest = "CityBreaks"
	TravelBackpacking   TravelInterest = "Backpacking"
	TravelRoadTrips     TravelInterest = "RoadTrips"
	TravelCamping       TravelInterest = "Camping"
	TravelLuxuryResorts TravelInterest = "LuxuryResorts"
	TravelWinterSports  TravelInterest = "WinterSports"
	TravelCruises       TravelInterest = "Cruises"
)

// Profile represents a person eligible for recommendation. Profiles are
// owned by the external profile provider; the core only reads them and
// treats every instance as an immutable snapshot for the duration of one
// recommendation request.
type Profile struct {
	ProfileID   uuid.UUID `json:"profileID"`
	AccountID   uuid.UUID `json:"accountID"`
	ImagePaths  []string  `json:"imagePaths"` // up to 3 image references
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Gender      Gender    `json:"gender"`
	DateOfBirth time.Time `json:"dateOfBirth"`

	BookInterest      *BookInterest      `json:"bookInterest,omitempty"`
	SportInterest     *SportInterest     `json:"sportInterest,omitempty"`
	MovieInterest     *MovieInterest     `json:"movieInterest,omitempty"`
	MusicInterest     *MusicInterest     `json:"musicInterest,omitempty"`
	FoodInterest      *FoodInterest      `json:"foodInterest,omitempty"`
	LifestyleInterest *LifestyleInterest `json:"lifestyleInterest,omitempty"`
	TravelInterest    *TravelInterest    `json:"travelInterest,omitempty"`
}
