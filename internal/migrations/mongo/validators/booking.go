package validators

import "go.mongodb.org/mongo-driver/bson"

const datePattern = `^\d{4}-\d{2}-\d{2}$`

var BookingRequiredFields = []string{
	"startDate",
	"endDate",
	"clientName",
	"email",
	"daytimePhone",
	"listingId",
	"createdAt",
}

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             BookingRequiredFields,
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"startDate": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"endDate": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"clientName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"daytimePhone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 32,
			},

			"mobile": bson.M{
				"bsonType":  "string",
				"maxLength": 32,
			},

			"postalAddress": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"homeAddress": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"listingId": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
